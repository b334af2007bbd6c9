// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package validation

import (
	"strings"
	"testing"
)

type queryFixture struct {
	Mode  string `json:"mode" validate:"required,oneof=movie mood"`
	Value string `json:"value" validate:"notblank"`
	TopN  int    `json:"top_n" validate:"min=0,max=50"`
}

type nestedFixture struct {
	Server struct {
		Port int `koanf:"port" validate:"min=1,max=65535"`
	} `koanf:"server"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     queryFixture
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"valid movie", queryFixture{Mode: "movie", Value: "Avatar", TopN: 5}, "", "", ""},
		{"valid zero top_n", queryFixture{Mode: "mood", Value: "happy"}, "", "", ""},
		{"missing mode", queryFixture{Value: "Avatar"}, "mode", "required", "mode is required"},
		{"bad mode", queryFixture{Mode: "genre", Value: "x"}, "mode", "oneof", "mode must be one of: movie mood"},
		{"blank value", queryFixture{Mode: "movie", Value: "   "}, "value", "notblank", "value must not be blank"},
		{"negative top_n", queryFixture{Mode: "movie", Value: "x", TopN: -1}, "top_n", "min", "top_n must be at least 0"},
		{"huge top_n", queryFixture{Mode: "movie", Value: "x", TopN: 51}, "top_n", "max", "top_n must be at most 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if len(err.Fields) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(err.Fields), err)
			}
			if got := err.Fields[0]; got.Field != tt.wantField || got.Rule != tt.wantTag {
				t.Errorf("field/rule = %s/%s, want %s/%s", got.Field, got.Rule, tt.wantField, tt.wantTag)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStructNestedNamespace(t *testing.T) {
	var cfg nestedFixture
	err := ValidateStruct(&cfg)
	if err == nil {
		t.Fatal("expected error for zero port")
	}
	if got := err.Fields[0].Field; got != "server.port" {
		t.Errorf("Field = %q, want server.port", got)
	}
}

func TestToAPIError(t *testing.T) {
	err := ValidateStruct(&queryFixture{Mode: "nope", Value: "", TopN: 99})
	if err == nil {
		t.Fatal("expected errors")
	}
	apiErr := err.ToAPIError()
	if apiErr.Code != CodeValidation {
		t.Errorf("Code = %q", apiErr.Code)
	}
	fields, ok := apiErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Fatalf("Details[fields] = %#v, want 3 entries", apiErr.Details["fields"])
	}
	for _, want := range []string{"mode", "value", "top_n"} {
		if !strings.Contains(apiErr.Message, want) {
			t.Errorf("Message %q does not mention %s", apiErr.Message, want)
		}
	}

	single := ValidateStruct(&queryFixture{Mode: "movie", Value: "x", TopN: 51}).ToAPIError()
	if f := single.Details["fields"].([]FieldError); len(f) != 1 || f[0].Field != "top_n" || f[0].Param != "50" {
		t.Errorf("single Details[fields] = %+v, want top_n max 50", f)
	}
	if single.Message != "top_n must be at most 50" {
		t.Errorf("single Message = %q", single.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %q", empty.Message)
	}
}

func TestValidateStructNonStruct(t *testing.T) {
	err := ValidateStruct("not a struct")
	if err == nil || len(err.Fields) != 1 || err.Fields[0].Rule != "struct" {
		t.Errorf("ValidateStruct(string) = %+v", err)
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator returned different instances")
	}
}
