package main

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParsePages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{input: "", want: nil},
		{input: "1", want: []int{1}},
		{input: "3,1,2", want: []int{1, 2, 3}},
		{input: "1,3,5-7", want: []int{1, 3, 5, 6, 7}},
		{input: " 2 - 4 , 3 ", want: []int{2, 3, 4}},
		{input: "0", wantErr: true},
		{input: "-2", wantErr: true},
		{input: "4-2", wantErr: true},
		{input: "a", wantErr: true},
		{input: "1,,2", wantErr: true},
		{input: "1-20000", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parsePages(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUsage) {
					t.Fatalf("parsePages(%q) error = %v, want ErrUsage", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePages(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parsePages(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBatchTargets(t *testing.T) {
	t.Parallel()

	got, err := batchTargets("out", []string{"a/cours.pdf", "b/maths.PDF"})
	if err != nil {
		t.Fatalf("batchTargets() error = %v", err)
	}
	want := []string{filepath.Join("out", "cours"), filepath.Join("out", "maths")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("batchTargets() = %v, want %v", got, want)
	}

	if _, err := batchTargets("out", []string{"a/cours.pdf", "b/cours.pdf"}); !errors.Is(err, ErrUsage) {
		t.Errorf("duplicate names error = %v, want ErrUsage", err)
	}
}
