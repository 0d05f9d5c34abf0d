package dsl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRoundTrip(t *testing.T) {
	Convey("Formatting a parsed LHS and reparsing it yields an equal tree", t, func() {
		inputs := []string{
			"foo", "*", "id_*_suffix", "id|name|*", "@", "@(guid.value)",
			"@(2,guid.value)", "$(1,2)", "#guid", "&(1)", "&",
		}
		for _, s := range inputs {
			l1, err := ParseLhs(s)
			So(err, ShouldBeNil)
			formatted := FormatLhs(l1)
			l2, err := ParseLhs(formatted)
			So(err, ShouldBeNil)
			So(cmp.Diff(l1, l2), ShouldBeEmpty)
		}
	})

	Convey("Formatting a parsed RHS and reparsing it yields an equal tree", t, func() {
		inputs := []string{
			"data.id", "items[]", "items[3]", "data[&(1)].guid", "item_&(0)",
			"data.&(0)", "new_location.&(0).&(1).&(2)",
		}
		for _, s := range inputs {
			r1, err := ParseRhs(s)
			So(err, ShouldBeNil)
			formatted := FormatRhs(r1)
			r2, err := ParseRhs(formatted)
			So(err, ShouldBeNil)
			So(cmp.Diff(r1, r2), ShouldBeEmpty)
		}
	})

	Convey("Escaping round-trips through a literal key containing special characters", t, func() {
		l1 := &Lhs{Kind: LhsPipes, Pipes: [][]string{{"a.b"}}}
		formatted := FormatLhs(l1)
		l2, err := ParseLhs(formatted)
		So(err, ShouldBeNil)
		So(cmp.Diff(l1, l2), ShouldBeEmpty)
	})
}
