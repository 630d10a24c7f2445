package generator

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/doITmagic/phpgen/internal/logger"
	"github.com/doITmagic/phpgen/internal/reflection"
)

const repositorySource = `<?php

namespace App\Repo;

use App\Entity\User;

/**
 * In-memory repository.
 */
final class ArrayRepository implements UserRepository
{
    public const LIMIT = 10;

    /** @var array<int, User> */
    private $users = [];

    public function find(int $id): ?User
    {
        $user = $this->users[$id] ?? null;

        return $user;
    }

    /**
     * @param User $user
     */
    public function save($user, string ...$tags): void
    {
        $this->users[$user->id] = $user;
    }
}
`

const interfaceSource = `<?php

namespace App\Repo;

use App\Entity\User;

interface UserRepository
{
    /**
     * @return $this
     */
    public function withLimit(int $limit);

    public function find(int $id): ?User;

    public function save(User $user, string ...$tags): void;

    public static function create(): self;
}
`

const traitSource = `<?php

namespace App\Repo;

trait Timestamps
{
    public function touch(): void
    {
        $this->updatedAt = time();
    }
}
`

func newTestGenerator(t *testing.T) (*Generator, *reflection.Reflector) {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/src/ArrayRepository.php": repositorySource,
		"/src/UserRepository.php":  interfaceSource,
		"/src/Timestamps.php":      traitSource,
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	r := reflection.NewReflector(
		reflection.WithFs(fs),
		reflection.WithLogger(logger.NewLogger(logger.TestConfig())),
	)
	require.NoError(t, r.LoadPaths("/src"))
	return New(r), r
}

func TestGenerator_FileFrom(t *testing.T) {
	g, r := newTestGenerator(t)
	class, err := r.Class(`App\Repo\ArrayRepository`)
	require.NoError(t, err)

	f, err := g.FileFrom(class)
	require.NoError(t, err)

	expected := `<?php

declare(strict_types=1);

namespace App\Repo;

use App\Entity\User;

/**
 * In-memory repository.
 */
final class ArrayRepository implements UserRepository
{
    public const LIMIT = 10;

    /**
     * @var array<int, User>
     */
    private array $users = [];

    public function find(int $id): ?User
    {
        $user = $this->users[$id] ?? null;

        return $user;
    }

    /**
     * @param User $user
     */
    public function save(\App\Entity\User $user, string ...$tags): void
    {
        $this->users[$user->id] = $user;
    }
}
`
	require.Equal(t, expected, f.String())
}

func TestGenerator_MethodFrom(t *testing.T) {
	g, r := newTestGenerator(t)

	m, err := reflection.MethodFromName(r, `App\Repo\ArrayRepository`, "find")
	require.NoError(t, err)
	method, err := g.MethodFrom(m)
	require.NoError(t, err)
	require.Equal(t, "$user = $this->users[$id] ?? null;\n\nreturn $user;", method.Body())
	require.Equal(t, []string{"User", "null"}, method.ReturnTypes())

	// Interface members keep their signature and get no body
	m, err = reflection.MethodFromName(r, `App\Repo\UserRepository`, "withLimit")
	require.NoError(t, err)
	method, err = g.MethodFrom(m)
	require.NoError(t, err)
	require.False(t, method.IsAbstract())
	require.Empty(t, method.Body())
	require.Equal(t, []string{"static"}, method.ReturnTypes())
}

func TestGenerator_StructFromInterface(t *testing.T) {
	g, r := newTestGenerator(t)
	class, err := r.Class(`App\Repo\UserRepository`)
	require.NoError(t, err)

	s, err := g.StructFrom(class)
	require.NoError(t, err)

	expected := `interface UserRepository
{
    /**
     * @return $this
     */
    public function withLimit(int $limit): static;

    public function find(int $id): ?User;

    public function save(User $user, string ...$tags): void;

    public static function create(): self;
}
`
	require.Equal(t, expected, s.String())
}

func TestGenerator_Proxy(t *testing.T) {
	g, r := newTestGenerator(t)
	class, err := r.Class(`App\Repo\UserRepository`)
	require.NoError(t, err)

	f, err := g.Proxy(class, "RepositoryProxy", `App\Proxy`)
	require.NoError(t, err)

	expected := `<?php

declare(strict_types=1);

namespace App\Proxy;

/**
 * Forwards calls to \App\Repo\UserRepository.
 */
final class RepositoryProxy implements \App\Repo\UserRepository
{
    private readonly \App\Repo\UserRepository $inner;

    public function __construct(\App\Repo\UserRepository $inner)
    {
        $this->inner = $inner;
    }

    public function withLimit(int $limit): static
    {
        $this->inner->withLimit($limit);

        return $this;
    }

    public function find(int $id): ?\App\Entity\User
    {
        return $this->inner->find($id);
    }

    public function save(\App\Entity\User $user, string ...$tags): void
    {
        $this->inner->save($user, ...$tags);
    }
}
`
	require.Equal(t, expected, f.String())
}

func TestGenerator_ProxyRejectsTrait(t *testing.T) {
	g, r := newTestGenerator(t)
	class, err := r.Class(`App\Repo\Timestamps`)
	require.NoError(t, err)

	_, err = g.Proxy(class, "TimestampsProxy", "")
	require.ErrorContains(t, err, "cannot proxy trait")
}

func TestDedent(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"single line", "return 1;", "return 1;"},
		{"empty", "", ""},
		{
			name: "common indent",
			body: "$a = 1;\n        if ($a) {\n            $a++;\n        }",
			want: "$a = 1;\nif ($a) {\n    $a++;\n}",
		},
		{
			name: "blank lines ignored",
			body: "$a = 1;\n\n        return $a;\n   ",
			want: "$a = 1;\n\nreturn $a;\n",
		},
		{
			name: "tabs",
			body: "$a = 1;\n\t\treturn $a;",
			want: "$a = 1;\nreturn $a;",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Dedent(tc.body))
		})
	}
}

func TestNativeTypes(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"array<int, User>"}, []string{"array"}},
		{[]string{`\App\User[]`, "null"}, []string{"array", "null"}},
		{[]string{"?int"}, []string{"int", "null"}},
		{[]string{"list<string>"}, []string{"array"}},
		{[]string{"class-string<Foo>"}, []string{"string"}},
		{[]string{"positive-int"}, []string{"int"}},
		{[]string{"$this"}, []string{"static"}},
		{[]string{`\Collection<int, User>`}, []string{`\Collection`}},
		{[]string{"int", "resource"}, nil},
		{[]string{}, []string{}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, nativeTypes(tc.in), "in %v", tc.in)
	}
}
