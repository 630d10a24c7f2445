package reflection

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// stubFunction is a handle that was not produced by a Reflector.
type stubFunction struct {
	name     string
	file     string
	abstract bool
}

func (s stubFunction) Name() string               { return s.name }
func (s stubFunction) NamespaceName() string      { return "" }
func (s stubFunction) DocComment() (string, bool) { return "", false }
func (s stubFunction) FileName() (string, bool)   { return s.file, s.file != "" }
func (s stubFunction) IsAbstract() bool           { return s.abstract }

func writeFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
}

func TestExtractBody_Method(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/src/Greeter.php", `<?php

class Greeter
{
    /**
     * Wraps greet() for callers.
     */
    public function greet(string $name): string
    {
        $greeting = 'Hello ' . $name;

        return $greeting;
    }
}
`)

	body, err := ExtractBody(fs, stubFunction{name: "greet", file: "/src/Greeter.php"}, false)
	require.NoError(t, err)
	require.Equal(t, "$greeting = 'Hello ' . $name;\n\n        return $greeting;", body)
}

func TestExtractBody_NoBodyTargets(t *testing.T) {
	fs := afero.NewMemMapFs()

	// Neither case touches the filesystem
	body, err := ExtractBody(fs, stubFunction{name: "run", file: "/missing.php"}, true)
	require.NoError(t, err)
	require.Empty(t, body)

	body, err = ExtractBody(fs, stubFunction{name: "run", file: "/missing.php", abstract: true}, false)
	require.NoError(t, err)
	require.Empty(t, body)
}

func TestExtractBody_EmptyBraces(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/src/Noop.php", "<?php\nclass Noop\n{\n    public function noop()\n    {\n    }\n}\n")

	body, err := ExtractBody(fs, stubFunction{name: "noop", file: "/src/Noop.php"}, false)
	require.NoError(t, err)
	require.Empty(t, body)
}

func TestExtractBody_GlobalFunction(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/src/helpers.php", "<?php\n\nfunction double(int $x): int\n{\n    return $x * 2;\n}\n")

	body, err := ExtractBody(fs, stubFunction{name: "double", file: "/src/helpers.php"}, false)
	require.NoError(t, err)
	require.Equal(t, "return $x * 2;", body)
}

func TestExtractBody_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := ExtractBody(fs, stubFunction{name: "synthetic"}, false)
	require.ErrorIs(t, err, ErrNoFile)

	_, err = ExtractBody(fs, stubFunction{name: "gone", file: "/src/gone.php"}, false)
	require.ErrorIs(t, err, ErrReadFile)
}

func TestBodyBoundaries_ReArmOnEveryNameMatch(t *testing.T) {
	lines := []string{
		"    /**\n",
		"     * Calls handle() twice.\n",
		"     */\n",
		"    public function handle(\n",
		"        Request $request,\n",
		"    ): Response\n",
		"    {\n",
		"        return $this->next($request);\n",
		"    }\n",
	}
	require.Equal(t, 6, BodyStartLine("handle", lines))
	require.Equal(t, 8, BodyEndLine("handle", lines))

	// A name that never appears leaves the boundaries at the first line
	require.Equal(t, 0, BodyStartLine("absent", lines))
	require.Equal(t, 0, BodyEndLine("absent", lines))
}

// The scan does not balance braces: a nested block ends the body early.
func TestExtractBody_KnownLimitation_NestedBraces(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/src/fact.php", `<?php
function fact(int $n): int
{
    if ($n <= 1) {
        return 1;
    }
    return $n * fact($n - 1);
}
`)

	body, err := ExtractBody(fs, stubFunction{name: "fact", file: "/src/fact.php"}, false)
	require.NoError(t, err)
	require.Equal(t, "if ($n <= 1)        return 1;", body)
	require.NotContains(t, body, "fact($n - 1)")
}

// A brace on a line naming the target, here in its doc comment, is taken as
// the body boundary.
func TestExtractBody_KnownLimitation_ForeignBrace(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/src/Runner.php", `<?php
class Runner
{
    /**
     * Calls run {@see Worker}.
     */
    public function run(): void
    {
        $this->worker->start();
    }
}
`)

	body, err := ExtractBody(fs, stubFunction{name: "run", file: "/src/Runner.php"}, false)
	require.NoError(t, err)
	require.Empty(t, body)
}
