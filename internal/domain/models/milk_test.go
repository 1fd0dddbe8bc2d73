package models

import "testing"

func TestResolveMilkType(t *testing.T) {
	cases := []struct {
		name    string
		types   []MilkType
		want    MilkType
		wantErr bool
	}{
		{"empty defaults to cow", nil, MilkTypeCow, false},
		{"single buffalo", []MilkType{MilkTypeBuffalo}, MilkTypeBuffalo, false},
		{"first of many wins", []MilkType{MilkTypeCow, MilkTypeBuffalo}, MilkTypeCow, false},
		{"unknown rejected", []MilkType{"goat"}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveMilkType(tc.types)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ResolveMilkType(%v) = %q, want error", tc.types, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveMilkType(%v): %v", tc.types, err)
			}
			if got != tc.want {
				t.Errorf("ResolveMilkType(%v) = %q, want %q", tc.types, got, tc.want)
			}
		})
	}
}

func TestMilkTypeValid(t *testing.T) {
	if !MilkTypeCow.Valid() || !MilkTypeBuffalo.Valid() {
		t.Error("known milk types reported invalid")
	}
	if MilkType("goat").Valid() || MilkType("").Valid() {
		t.Error("unknown milk type reported valid")
	}
}
