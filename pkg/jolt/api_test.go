package jolt

import (
	"encoding/json"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// The eight end-to-end scenarios are transcribed directly; scenario 1's RHS
// uses the canonical bare "&" rather than the spec prose's literal
// "data.&0", which does not reparse to the documented expected output under
// strict grammar (see DESIGN.md).

func TestEndToEndScenarios(t *testing.T) {
	Convey("1. Identity repack", t, func() {
		input := mustValue(`{"id":1,"name":"John Smith","account":{"id":1000,"type":"Checking"}}`)
		spec, err := ParseSpec([]byte(`{"operation":"shift","spec":{"*":"data.&"}}`))
		So(err, ShouldBeNil)
		out, err := Transform(input, spec)
		So(err, ShouldBeNil)
		expected := mustValue(`{"data":{"id":1,"name":"John Smith","account":{"id":1000,"type":"Checking"}}}`)
		So(ValuesEqual(out, expected), ShouldBeTrue)
	})

	Convey("2. Explicit fields via Pipes alternation", t, func() {
		input := mustValue(`{"id":1,"name":"John Smith","account":{"id":1000,"type":"Checking"}}`)
		spec, err := ParseSpec([]byte(`{"operation":"shift","spec":{"id|name":"data.&(0)"}}`))
		So(err, ShouldBeNil)
		out, err := Transform(input, spec)
		So(err, ShouldBeNil)
		expected := mustValue(`{"data":{"id":1,"name":"John Smith"}}`)
		So(ValuesEqual(out, expected), ShouldBeTrue)
	})

	Convey("3. Path reversal via &", t, func() {
		input := mustValue(`{"foo":{"bar":{"baz":"value"}}}`)
		spec, err := ParseSpec([]byte(`{"operation":"shift","spec":{"foo":{"bar":{"baz":"new_location.&(0).&(1).&(2)"}}}}`))
		So(err, ShouldBeNil)
		out, err := Transform(input, spec)
		So(err, ShouldBeNil)
		expected := mustValue(`{"new_location":{"baz":{"bar":{"foo":"value"}}}}`)
		So(ValuesEqual(out, expected), ShouldBeTrue)
	})

	Convey("4. Array push with & index", t, func() {
		input := mustValue(`{"items":[{"guid":{"value":"A"}},{"guid":{"value":"B"}}]}`)
		spec, err := ParseSpec([]byte(`{"operation":"shift","spec":{"items":{"*":{"@(guid.value)":"data[&(1)].guid","*":{"$":"data[&(2)].keys[]"}}}}}`))
		So(err, ShouldBeNil)
		out, err := Transform(input, spec)
		So(err, ShouldBeNil)
		expected := mustValue(`{"data":[{"guid":"A","keys":["guid"]},{"guid":"B","keys":["guid"]}]}`)
		So(ValuesEqual(out, expected), ShouldBeTrue)
	})

	Convey("5. Default", t, func() {
		input := mustValue(`{"phones":{"mobile":1234567,"country":"US"}}`)
		spec, err := ParseSpec([]byte(`{"operation":"default","spec":{"phones":{"mobile":0,"code":"+1"}}}`))
		So(err, ShouldBeNil)
		out, err := Transform(input, spec)
		So(err, ShouldBeNil)
		expected := mustValue(`{"phones":{"mobile":1234567,"country":"US","code":"+1"}}`)
		So(ValuesEqual(out, expected), ShouldBeTrue)
	})

	Convey("6. Remove", t, func() {
		input := mustValue(`{"phones":{"mobile":1234567,"country":"US"}}`)
		spec, err := ParseSpec([]byte(`{"operation":"remove","spec":{"phones":{"country":""}}}`))
		So(err, ShouldBeNil)
		out, err := Transform(input, spec)
		So(err, ShouldBeNil)
		expected := mustValue(`{"phones":{"mobile":1234567}}`)
		So(ValuesEqual(out, expected), ShouldBeTrue)
	})

	Convey("7. Collision error", t, func() {
		input := mustValue(`{"a":1,"b":2}`)
		spec, err := ParseSpec([]byte(`{"operation":"shift","spec":{"a":"x","b":"x"}}`))
		So(err, ShouldBeNil)
		_, err = Transform(input, spec)
		So(err, ShouldNotBeNil)
		So(err.(*JoltError).Kind, ShouldEqual, KindCollision)
	})

	Convey("8. KeyNotFound error", t, func() {
		input := mustValue(`{"a":{}}`)
		spec, err := ParseSpec([]byte(`{"operation":"shift","spec":{"a":{"@(missing)":"out"}}}`))
		So(err, ShouldBeNil)
		_, err = Transform(input, spec)
		So(err, ShouldNotBeNil)
		So(err.(*JoltError).Kind, ShouldEqual, KindKeyNotFound)
	})
}

func TestTransformBytes(t *testing.T) {
	Convey("TransformBytes round-trips JSON bytes through the pipeline", t, func() {
		spec, err := ParseSpec([]byte(`{"operation":"shift","spec":{"a":"out.a"}}`))
		So(err, ShouldBeNil)
		out, err := TransformBytes([]byte(`{"a":1,"b":2}`), spec)
		So(err, ShouldBeNil)

		var got map[string]interface{}
		So(json.Unmarshal(out, &got), ShouldBeNil)
		So(got, ShouldResemble, map[string]interface{}{"out": map[string]interface{}{"a": 1.0}})
	})

	Convey("Invalid input JSON is reported as a SpecError, not a panic", t, func() {
		spec, _ := ParseSpec([]byte(`{"operation":"shift","spec":{"a":"out.a"}}`))
		_, err := TransformBytes([]byte(`not json`), spec)
		So(err, ShouldNotBeNil)
		So(err.(*JoltError).Kind, ShouldEqual, KindSpecError)
	})
}

func TestPipelineChaining(t *testing.T) {
	Convey("A multi-operation pipeline feeds each stage's output to the next", t, func() {
		input := mustValue(`{"a":1,"b":2}`)
		spec, err := ParseSpec([]byte(`[
			{"operation":"shift","spec":{"a":"out.a","b":"out.b"}},
			{"operation":"default","spec":{"out":{"c":3}}},
			{"operation":"remove","spec":{"out":{"b":""}}}
		]`))
		So(err, ShouldBeNil)
		out, err := Transform(input, spec)
		So(err, ShouldBeNil)
		expected := mustValue(`{"out":{"a":1,"c":3}}`)
		So(ValuesEqual(out, expected), ShouldBeTrue)
	})
}

func TestConcurrentSpecReuse(t *testing.T) {
	Convey("A parsed TransformSpec is safe to reuse concurrently across goroutines", t, func() {
		spec, err := ParseSpec([]byte(`{"operation":"shift","spec":{"*":"data.&"}}`))
		So(err, ShouldBeNil)

		const n = 50
		var wg sync.WaitGroup
		errs := make([]error, n)
		outs := make([]Value, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				in := mustValue(`{"id":1,"name":"x"}`)
				outs[i], errs[i] = Transform(in, spec)
			}(i)
		}
		wg.Wait()

		expected := mustValue(`{"data":{"id":1,"name":"x"}}`)
		for i := 0; i < n; i++ {
			So(errs[i], ShouldBeNil)
			So(ValuesEqual(outs[i], expected), ShouldBeTrue)
		}
	})
}

func TestShiftInvariantProperties(t *testing.T) {
	Convey("shift preserves scalars it routes: structural equality of read vs written value", t, func() {
		input := mustValue(`{"n":42,"s":"hello","b":true,"nested":{"arr":[1,2,3]}}`)
		spec, err := ParseSpec([]byte(`{"operation":"shift","spec":{"*":"out.&"}}`))
		So(err, ShouldBeNil)
		out, err := Transform(input, spec)
		So(err, ShouldBeNil)

		outObj, _ := out.Object().Get("out")
		for pair := input.Object().Oldest(); pair != nil; pair = pair.Next() {
			routed, ok := outObj.Object().Get(pair.Key)
			So(ok, ShouldBeTrue)
			So(ValuesEqual(routed, pair.Value), ShouldBeTrue)
		}
	})

	Convey("No successful shift write overwrites a non-null pre-existing value", t, func() {
		input := mustValue(`{"a":1,"b":2,"c":3}`)
		spec, err := ParseSpec([]byte(`{"operation":"shift","spec":{"a":"x.y","b":"x.y"}}`))
		So(err, ShouldBeNil)
		_, err = Transform(input, spec)
		So(err, ShouldNotBeNil)
		So(err.(*JoltError).Kind, ShouldEqual, KindCollision)
	})
}
