package parser

import (
	"errors"
	"testing"
)

func TestParseBaseType(t *testing.T) {
	t.Run("Primitive Types", func(t *testing.T) {
		for _, name := range PrimitiveTypes {
			base, err := ParseBaseType(name, "", "")
			if err != nil {
				t.Fatalf("ParseBaseType(%q) returned error: %v", name, err)
			}
			if !base.IsPrimitive() {
				t.Errorf("expected %q to be primitive", name)
			}
			if base.Name != name {
				t.Errorf("expected name %q, got %q", name, base.Name)
			}
		}
	})

	t.Run("Bounded String", func(t *testing.T) {
		base, err := ParseBaseType("string<=23", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if base.Name != "string" || base.StringUpperBound != 23 {
			t.Errorf("unexpected base type: %+v", base)
		}
		if base.String() != "string<=23" {
			t.Errorf("expected 'string<=23', got %q", base.String())
		}
	})

	t.Run("Invalid String Bounds", func(t *testing.T) {
		for _, typeString := range []string{"string<=", "string<=0", "string<=-1", "string<=abc"} {
			if _, err := ParseBaseType(typeString, "", ""); err == nil {
				t.Errorf("ParseBaseType(%q) should fail", typeString)
			}
		}
	})

	t.Run("Fully Qualified Type", func(t *testing.T) {
		base, err := ParseBaseType("geometry_msgs::msg::Point", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if base.PkgName != "geometry_msgs" || base.Namespace != "msg" || base.Name != "Point" {
			t.Errorf("unexpected base type: %+v", base)
		}
		if base.String() != "geometry_msgs/Point" {
			t.Errorf("expected 'geometry_msgs/Point', got %q", base.String())
		}
	})

	t.Run("Context Resolution", func(t *testing.T) {
		base, err := ParseBaseType("Point", "geometry_msgs", "msg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if base.PkgName != "geometry_msgs" || base.Name != "Point" {
			t.Errorf("unexpected base type: %+v", base)
		}
	})

	t.Run("Unqualified Without Context", func(t *testing.T) {
		_, err := ParseBaseType("Point", "", "")
		var resourceErr *InvalidResourceNameError
		if !errors.As(err, &resourceErr) {
			t.Fatalf("expected InvalidResourceNameError, got %v", err)
		}
		if !errors.Is(err, ErrInvalidSpecification) {
			t.Error("error should match ErrInvalidSpecification")
		}
	})

	t.Run("Invalid Names", func(t *testing.T) {
		cases := []string{
			"Geometry_msgs::msg::Point", // invalid package name
			"geometry_msgs::msg::point", // invalid message name
			"a::b",                      // wrong number of parts
		}
		for _, typeString := range cases {
			if _, err := ParseBaseType(typeString, "", ""); err == nil {
				t.Errorf("ParseBaseType(%q) should fail", typeString)
			}
		}
	})
}

func TestParseType(t *testing.T) {
	tests := []struct {
		typeString   string
		isArray      bool
		arraySize    int
		isUpperBound bool
	}{
		{"int32", false, 0, false},
		{"int32[]", true, 0, false},
		{"int32[5]", true, 5, false},
		{"int32[<=5]", true, 5, true},
		{"string<=10[]", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.typeString, func(t *testing.T) {
			typ, err := ParseType(tt.typeString, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if typ.IsArray != tt.isArray || typ.ArraySize != tt.arraySize || typ.IsUpperBound != tt.isUpperBound {
				t.Errorf("ParseType(%q) = %+v", tt.typeString, typ)
			}
			if typ.String() != tt.typeString {
				t.Errorf("round trip: expected %q, got %q", tt.typeString, typ.String())
			}
		})
	}

	t.Run("Invalid Array Sizes", func(t *testing.T) {
		for _, typeString := range []string{"int32[0]", "int32[-1]", "int32[<=0]", "int32[abc]"} {
			if _, err := ParseType(typeString, ""); err == nil {
				t.Errorf("ParseType(%q) should fail", typeString)
			}
		}
	})

	t.Run("Array Classification", func(t *testing.T) {
		fixed, _ := ParseType("int32[5]", "")
		if !fixed.IsFixedSizeArray() || fixed.IsDynamicArray() {
			t.Error("int32[5] should be a fixed size array")
		}
		bounded, _ := ParseType("int32[<=5]", "")
		if bounded.IsFixedSizeArray() || !bounded.IsDynamicArray() {
			t.Error("int32[<=5] should be a dynamic array")
		}
		unbounded, _ := ParseType("int32[]", "")
		if !unbounded.IsDynamicArray() {
			t.Error("int32[] should be a dynamic array")
		}
	})

	t.Run("Complex Type With Context", func(t *testing.T) {
		typ, err := ParseType("Point[]", "geometry_msgs")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if typ.PkgName != "geometry_msgs" || typ.Namespace != "msg" || !typ.IsArray {
			t.Errorf("unexpected type: %+v", typ)
		}
	})
}

func TestNameValidation(t *testing.T) {
	t.Run("Package Names", func(t *testing.T) {
		valid := []string{"foo", "foo_bar", "foo2", "f2o_b4r"}
		invalid := []string{"", "Foo", "_foo", "foo_", "foo__bar", "2foo"}
		for _, name := range valid {
			if !IsValidPackageName(name) {
				t.Errorf("%q should be a valid package name", name)
			}
		}
		for _, name := range invalid {
			if IsValidPackageName(name) {
				t.Errorf("%q should not be a valid package name", name)
			}
		}
	})

	t.Run("Message Names", func(t *testing.T) {
		valid := []string{"Foo", "FooBar", "Foo2", "Sample_Foo", "Foo_Request", "Foo_Response"}
		invalid := []string{"", "foo", "Foo_Bar", "2Foo"}
		for _, name := range valid {
			if !IsValidMessageName(name) {
				t.Errorf("%q should be a valid message name", name)
			}
		}
		for _, name := range invalid {
			if IsValidMessageName(name) {
				t.Errorf("%q should not be a valid message name", name)
			}
		}
	})

	t.Run("Constant Names", func(t *testing.T) {
		valid := []string{"FOO", "FOO_BAR", "FOO2"}
		invalid := []string{"", "foo", "FOO__BAR", "_FOO", "FOO_"}
		for _, name := range valid {
			if !IsValidConstantName(name) {
				t.Errorf("%q should be a valid constant name", name)
			}
		}
		for _, name := range invalid {
			if IsValidConstantName(name) {
				t.Errorf("%q should not be a valid constant name", name)
			}
		}
	})
}
