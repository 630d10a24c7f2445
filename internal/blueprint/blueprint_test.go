package blueprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doITmagic/phpgen/internal/model"
)

const invoiceBlueprint = `
namespace: App\Billing
uses:
  - \App\Contracts\Payable
  - Carbon\Carbon
structs:
  - name: Invoice
    final: true
    implements: [Payable]
    comment: |-
      An issued invoice.

      @psalm-immutable
    constants:
      - name: CURRENCY
        value: EUR
      - name: STATUSES
        visibility: private
        value: {draft: 0, sent: 1, "10": paid}
      - name: DEFAULT_DUE
        expr: self::DAYS * 2
    properties:
      - name: total
        visibility: private
        types: [float]
        value: 0.0
      - name: paidAt
        readonly: true
        types: [Carbon]
        value: null
      - name: lines
        static: true
        visibility: protected
        types: [array]
        value: []
    methods:
      - name: pay
        returns: [static]
        params:
          - name: at
            types: [Carbon]
          - name: notes
            types: [string]
            variadic: true
        body: |
          $this->paidAt = $at;

          return $this;
      - name: "$lines"
`

func TestParse_RendersInvoice(t *testing.T) {
	src := strings.Replace(invoiceBlueprint, `      - name: "$lines"`+"\n", "", 1)
	f, err := Parse([]byte(src))
	require.NoError(t, err)

	expected := `<?php

declare(strict_types=1);

namespace App\Billing;

use App\Contracts\Payable;
use Carbon\Carbon;

/**
 * An issued invoice.
 *
 * @psalm-immutable
 */
final class Invoice implements Payable
{
    public const CURRENCY = 'EUR';
    private const STATUSES = ['draft' => 0, 'sent' => 1, 10 => 'paid'];
    public const DEFAULT_DUE = self::DAYS * 2;

    private float $total = 0.0;

    public readonly ?Carbon $paidAt = null;

    protected static array $lines = [];

    public function pay(Carbon $at, string ...$notes): static
    {
        $this->paidAt = $at;

        return $this;
    }
}
`
	require.Equal(t, expected, f.String())
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]struct {
		src  string
		want error
		msg  string
	}{
		"invalid method name": {
			src:  invoiceBlueprint,
			want: model.ErrInvalidName,
		},
		"missing struct name": {
			src:  "structs:\n  - kind: class\n",
			want: model.ErrTypeContract,
		},
		"non-string name": {
			src:  "structs:\n  - name: [a, b]\n",
			want: model.ErrTypeContract,
		},
		"unknown kind": {
			src:  "structs:\n  - name: Foo\n    kind: enum\n",
			want: model.ErrInvalidKind,
		},
		"unknown visibility": {
			src:  "structs:\n  - name: Foo\n    methods:\n      - name: bar\n        visibility: internal\n",
			want: model.ErrInvalidVisibility,
		},
		"constant without value": {
			src:  "structs:\n  - name: Foo\n    constants:\n      - name: BAR\n",
			want: model.ErrTypeContract,
		},
		"value and expr": {
			src:  "structs:\n  - name: Foo\n    properties:\n      - name: bar\n        value: 1\n        expr: BAZ\n",
			want: model.ErrTypeContract,
		},
		"unknown field": {
			src: "structs:\n  - name: Foo\n    colour: red\n",
			msg: "failed to parse blueprint",
		},
		"empty document": {
			src: "",
			msg: "empty blueprint",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src))
			require.Error(t, err)
			if tc.want != nil {
				require.ErrorIs(t, err, tc.want)
			}
			if tc.msg != "" {
				require.ErrorContains(t, err, tc.msg)
			}
		})
	}
}

func TestParse_InterfaceAndDefaults(t *testing.T) {
	src := `
strict_types: false
structs:
  - kind: interface
    name: Shape
    method_visibility: public
    methods:
      - name: area
        returns: [float]
  - kind: trait
    name: Named
    property_visibility: protected
    properties:
      - name: name
        types: [string]
`
	f, err := Parse([]byte(src))
	require.NoError(t, err)
	require.False(t, f.StrictTypes())
	require.Len(t, f.Structs(), 2)

	expected := `<?php

interface Shape
{
    public function area(): float;
}

trait Named
{
    protected string $name;
}
`
	require.Equal(t, expected, f.String())
}
