package jolt

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMatchStars(t *testing.T) {
	Convey("A literal fragment (no wildcard) matches only exact equality", t, func() {
		caps, ok := matchStars([]string{"id"}, "id")
		So(ok, ShouldBeTrue)
		So(caps, ShouldResemble, []string{"id"})

		_, ok = matchStars([]string{"id"}, "identity")
		So(ok, ShouldBeFalse)
	})

	Convey("A single wildcard captures the whole key", t, func() {
		caps, ok := matchStars([]string{"", ""}, "anything")
		So(ok, ShouldBeTrue)
		So(caps, ShouldResemble, []string{"anything", "anything"})
	})

	Convey("prefix*suffix requires both ends and a non-empty middle", t, func() {
		caps, ok := matchStars([]string{"foo_", "_bar"}, "foo_123_bar")
		So(ok, ShouldBeTrue)
		So(caps, ShouldResemble, []string{"foo_123_bar", "123"})

		_, ok = matchStars([]string{"foo_", "_bar"}, "foo__bar")
		So(ok, ShouldBeFalse, "the wildcard capture must be non-empty")
	})

	Convey("Interior fragments resolve leftmost-earliest", t, func() {
		caps, ok := matchStars([]string{"a", "x", "b"}, "aYxZb")
		So(ok, ShouldBeTrue)
		So(caps, ShouldResemble, []string{"aYxZb", "Y", "Z"})
	})

	Convey("A wildcard whose capture would be empty at an interior boundary fails to match", t, func() {
		_, ok := matchStars([]string{"a", "x", "b"}, "axxxb")
		So(ok, ShouldBeFalse, "the run of fragment occurrences leaves no room for a non-empty first capture")
	})

	Convey("No match when prefix or suffix is absent", t, func() {
		_, ok := matchStars([]string{"a", "b"}, "zzz")
		So(ok, ShouldBeFalse)
	})
}

func TestOrderedKeysAndValues(t *testing.T) {
	Convey("Objects yield keys in insertion order", t, func() {
		var v Value
		json.Unmarshal([]byte(`{"z":1,"a":2}`), &v)
		keys, vals := orderedKeysAndValues(v)
		So(keys, ShouldResemble, []string{"z", "a"})
		So(len(vals), ShouldEqual, 2)
	})

	Convey("Arrays yield stringified 0-based indices as keys", t, func() {
		var v Value
		json.Unmarshal([]byte(`["x","y","z"]`), &v)
		keys, vals := orderedKeysAndValues(v)
		So(keys, ShouldResemble, []string{"0", "1", "2"})
		So(vals[1].StringValue(), ShouldEqual, "y")
	})

	Convey("Scalars and null have no keys to iterate", t, func() {
		keys, vals := orderedKeysAndValues(String("x"))
		So(keys, ShouldBeNil)
		So(vals, ShouldBeNil)
		keys, vals = orderedKeysAndValues(Null())
		So(keys, ShouldBeNil)
		So(vals, ShouldBeNil)
	})
}

func TestRunShiftBasic(t *testing.T) {
	Convey("A literal-key fallible match routes its value", t, func() {
		var in Value
		json.Unmarshal([]byte(`{"id":1,"other":2}`), &in)
		node, err := parsePatternNode(mustValue(`{"id":"data.id"}`))
		So(err, ShouldBeNil)
		out, err := runShift(in, node)
		So(err, ShouldBeNil)
		expected := mustValue(`{"data":{"id":1}}`)
		So(ValuesEqual(out, expected), ShouldBeTrue)
	})

	Convey("Infallible entries fire once per level regardless of v's shape", t, func() {
		node, err := parsePatternNode(mustValue(`{"#literal":"out"}`))
		So(err, ShouldBeNil)
		out, err := runShift(Null(), node)
		So(err, ShouldBeNil)
		expected := mustValue(`{"out":"literal"}`)
		So(ValuesEqual(out, expected), ShouldBeTrue)
	})

	Convey("Unmatched input keys are simply dropped", t, func() {
		var in Value
		json.Unmarshal([]byte(`{"keep":1,"drop":2}`), &in)
		node, err := parsePatternNode(mustValue(`{"keep":"out.keep"}`))
		So(err, ShouldBeNil)
		out, err := runShift(in, node)
		So(err, ShouldBeNil)
		expected := mustValue(`{"out":{"keep":1}}`)
		So(ValuesEqual(out, expected), ShouldBeTrue)
	})
}

func mustValue(s string) Value {
	var v Value
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		panic(err)
	}
	return v
}
