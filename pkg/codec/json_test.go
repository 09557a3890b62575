package codec

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestEncodeJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"null", Null(), "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"integer", Number(42), "42"},
		{"negative integer", Number(-7), "-7"},
		{"float", Number(1.5), "1.5"},
		{"small float", Number(0.0001), "0.0001"},
		{"large integer stays decimal", Number(1e20), "100000000000000000000"},
		{"huge number uses exponent", Number(1e21), "1e+21"},
		{"nan encodes as null", Number(math.NaN()), "null"},
		{"infinity encodes as null", Number(math.Inf(1)), "null"},
		{"string", String("hello"), `"hello"`},
		{"string escapes", String("a\"b\\c\n"), `"a\"b\\c\n"`},
		{"control char", String("\x01"), `"\u0001"`},
		{"html not escaped", String("<&>"), `"<&>"`},
		{"unicode passthrough", String("héllo✓"), `"héllo✓"`},
		{"empty array", Array(), "[]"},
		{"array", Array(Number(1), String("x"), Null()), `[1,"x",null]`},
		{"empty object", Object(), "{}"},
		{
			"object keeps member order",
			Object(
				Member{Key: "z", Value: Number(1)},
				Member{Key: "a", Value: Number(2)},
			),
			`{"z":1,"a":2}`,
		},
		{
			"nested",
			Object(Member{Key: "list", Value: Array(Bool(true), Object())}),
			`{"list":[true,{}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeJSON(tt.in); got != tt.want {
				t.Errorf("EncodeJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Value
	}{
		{"null", "null", Null()},
		{"bool", "true", Bool(true)},
		{"number", "3.25", Number(3.25)},
		{"string", `"hi"`, String("hi")},
		{"array", `[1, 2, 3]`, Array(Number(1), Number(2), Number(3))},
		{"whitespace tolerated", "  42  ", Number(42)},
		{
			"object order preserved",
			`{"b":1,"a":2,"c":3}`,
			Object(
				Member{Key: "b", Value: Number(1)},
				Member{Key: "a", Value: Number(2)},
				Member{Key: "c", Value: Number(3)},
			),
		},
		{
			"nested structures",
			`{"user":{"name":"Ann","tags":["x","y"]}}`,
			Object(Member{Key: "user", Value: Object(
				Member{Key: "name", Value: String("Ann")},
				Member{Key: "tags", Value: Array(String("x"), String("y"))},
			)}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeJSON(tt.in)
			if err != nil {
				t.Fatalf("DecodeJSON(%q) error = %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("DecodeJSON(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"[1,",
		`{"a":}`,
		"tru",
		`"unterminated`,
		"1 2",
		"[1] trailing",
		"{]",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if _, err := DecodeJSON(in); !errors.Is(err, ErrParse) {
				t.Errorf("DecodeJSON(%q) error = %v, want ErrParse", in, err)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	inputs := []string{
		"null",
		"false",
		"12345",
		"-0.5",
		`"plain"`,
		`[null,true,1,"a",[2],{"k":3}]`,
		`{"z":1,"m":{"q":[],"p":{}},"a":"end"}`,
	}

	for _, in := range inputs {
		v, err := DecodeJSON(in)
		if err != nil {
			t.Fatalf("DecodeJSON(%q) error = %v", in, err)
		}
		if got := EncodeJSON(v); got != in {
			t.Errorf("round trip of %q produced %q", in, got)
		}
	}
}

func TestValueLookup(t *testing.T) {
	obj := Object(
		Member{Key: "name", Value: String("Ann")},
		Member{Key: "age", Value: Number(30)},
	)

	if v, ok := obj.Lookup("age"); !ok || v.NumberVal() != 30 {
		t.Errorf("Lookup(age) = %v, %v", v, ok)
	}
	if _, ok := obj.Lookup("missing"); ok {
		t.Error("Lookup(missing) should not be found")
	}
	if _, ok := String("x").Lookup("any"); ok {
		t.Error("Lookup on non-object should not be found")
	}
}

func TestValueEqual(t *testing.T) {
	a := Object(Member{Key: "a", Value: Number(1)}, Member{Key: "b", Value: Number(2)})
	b := Object(Member{Key: "b", Value: Number(2)}, Member{Key: "a", Value: Number(1)})

	if a.Equal(b) {
		t.Error("objects with different member order should not be equal")
	}
	if !a.Equal(a) {
		t.Error("value should equal itself")
	}
	if Null().Equal(Bool(false)) {
		t.Error("null should not equal false")
	}
}

func TestBase64(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"unknown", "dW5rbm93bg=="},
		{"@app1", "QGFwcDE="},
		{"https://example.com", "aHR0cHM6Ly9leGFtcGxlLmNvbQ=="},
	}

	for _, tt := range tests {
		if got := Base64Encode(tt.in); got != tt.want {
			t.Errorf("Base64Encode(%q) = %q, want %q", tt.in, got, tt.want)
		}
		back, err := Base64Decode(tt.want)
		if err != nil {
			t.Fatalf("Base64Decode(%q) error = %v", tt.want, err)
		}
		if back != tt.in {
			t.Errorf("Base64Decode(%q) = %q, want %q", tt.want, back, tt.in)
		}
	}

	if _, err := Base64Decode("not base64!!"); !errors.Is(err, ErrBase64) {
		t.Errorf("Base64Decode(invalid) error = %v, want ErrBase64", err)
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindNull:   "null",
		KindBool:   "bool",
		KindNumber: "number",
		KindString: "string",
		KindArray:  "array",
		KindObject: "object",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
	if !strings.Contains(Kind(99).String(), "invalid") {
		t.Errorf("unknown kind should stringify as invalid")
	}
}
