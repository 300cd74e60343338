package bugs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCollection = `{
  "version": "4.8.3",
  "patterns": [
    {"type": "NP_NULL", "shortDescription": "Null dereference", "longDescription": "Null in {1}",
     "detailText": "<p>details</p>", "category": "CORRECTNESS", "helpUrl": "https://example.com/bugs.html"}
  ],
  "bugs": [
    {"type": "NP_NULL", "rank": 3, "annotations": [
      {"kind": "class", "className": "com/example/Foo", "sourceFile": "Foo.java",
       "sourceLines": {"className": "com/example/Foo", "sourceFile": "Foo.java", "startLine": 1, "endLine": 40}},
      {"kind": "method", "className": "com.example.Foo", "methodName": "bar", "parameters": ["int"]},
      {"kind": "field", "className": "com.example.Foo", "fieldName": "f", "fieldType": "int"},
      {"kind": "localVariable", "name": "tmp", "register": 2, "pc": 7},
      {"kind": "int", "value": 5},
      {"kind": "string", "value": "text"},
      {"kind": "sourceLine", "className": "com.example.Foo", "sourceFile": "Foo.java", "startLine": 12, "endLine": 12}
    ]},
    {"type": "UNKNOWN_TYPE", "rank": 10, "annotations": []}
  ],
  "errors": [{"sequence": 4, "message": "analysis hiccup"}],
  "missingClasses": ["org/missing/B", "org/missing/A"],
  "plugins": [{"id": "com.example.plugin", "version": "1.0"}]
}`

func TestReadCollection(t *testing.T) {
	c, err := ReadCollection(strings.NewReader(sampleCollection), nil)
	require.NoError(t, err)

	assert.Equal(t, "4.8.3", c.AnalyzerVersion)
	require.Len(t, c.Patterns, 1)
	require.Len(t, c.Bugs, 1)

	bug := c.Bugs[0]
	assert.Equal(t, "NP_NULL", bug.Type)
	assert.Equal(t, 3, bug.Rank)
	assert.Same(t, c.Patterns[0], bug.Pattern)
	require.Len(t, bug.Annotations, 7)
	assert.Equal(t, "com.example.Foo", bug.PrimaryClass().ClassName)
	assert.Equal(t, "com.example.Foo", bug.PrimaryClass().SourceLines.ClassName)
	assert.IsType(t, &MethodAnnotation{}, bug.Annotations[1])
	assert.IsType(t, &FieldAnnotation{}, bug.Annotations[2])
	assert.IsType(t, &LocalVariableAnnotation{}, bug.Annotations[3])
	assert.Equal(t, &IntAnnotation{Value: 5}, bug.Annotations[4])
	assert.Equal(t, &StringAnnotation{Value: "text"}, bug.Annotations[5])

	sl, ok := bug.PrimarySourceLine()
	require.True(t, ok)
	assert.Equal(t, 12, sl.StartLine)

	assert.Equal(t, []string{"org.missing.A", "org.missing.B"}, c.MissingClasses)
	assert.Equal(t, []Plugin{{ID: "com.example.plugin", Version: "1.0"}}, c.Plugins)

	// The second bug has no pattern and is queued as an error after the decoded one.
	require.Len(t, c.Errors, 2)
	assert.Equal(t, 4, c.Errors[0].Sequence)
	assert.Equal(t, 5, c.Errors[1].Sequence)
	assert.Contains(t, c.Errors[1].Message, "UNKNOWN_TYPE")
	require.NotNil(t, c.Errors[1].Cause)
	assert.NotEmpty(t, c.Errors[1].Cause.StackTrace)
}

func TestReadCollectionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid json", `{"bugs": [`},
		{"pattern without type", `{"patterns": [{"shortDescription": "x"}]}`},
		{"unknown annotation kind", `{"patterns": [{"type": "A"}], "bugs": [{"type": "A", "annotations": [{"kind": "weird"}]}]}`},
		{"bad int value", `{"patterns": [{"type": "A"}], "bugs": [{"type": "A", "annotations": [{"kind": "int", "value": "x"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCollection(strings.NewReader(tt.input), nil)
			assert.Error(t, err)
		})
	}
}

func TestLoadCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bugs.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCollection), 0o644))

	c, err := LoadCollection(path, nil)
	require.NoError(t, err)
	assert.Len(t, c.Bugs, 1)

	_, err = LoadCollection(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestCollectionBuilders(t *testing.T) {
	c := NewCollection()
	c.AddPattern(&Pattern{Type: "A", ShortDescription: "first"})
	c.AddPattern(&Pattern{Type: "A", ShortDescription: "second"})
	require.Len(t, c.Patterns, 1)
	assert.Equal(t, "second", c.Patterns[0].ShortDescription)

	assert.True(t, c.AddBug(&Instance{Type: "A", Rank: 1}))
	assert.False(t, c.AddBug(&Instance{Type: "B", Rank: 1}))
	assert.Len(t, c.Bugs, 1)
	require.Len(t, c.Errors, 1)
	assert.Equal(t, 0, c.Errors[0].Sequence)

	c.AddMissingClass("x/Y")
	c.AddMissingClass("x.Y")
	c.AddMissingClass("a/B")
	assert.Equal(t, []string{"x.Y", "a.B"}, c.MissingClasses)
	c.SortMissingClasses()
	assert.Equal(t, []string{"a.B", "x.Y"}, c.MissingClasses)
}

func TestReadCollectionSequences(t *testing.T) {
	input := `{
	  "patterns": [{"type": "A"}],
	  "errors": [
	    {"message": "no sequence"},
	    {"message": "also no sequence"},
	    {"sequence": 5, "message": "explicit"},
	    {"sequence": 5, "message": "duplicate"},
	    {"sequence": 2, "message": "lower"},
	    {"sequence": 0, "message": "zero again"}
	  ],
	  "bugs": [{"type": "B", "rank": 1}]
	}`
	c, err := ReadCollection(strings.NewReader(input), nil)
	require.NoError(t, err)

	var sequences []int
	for _, e := range c.Errors {
		sequences = append(sequences, e.Sequence)
	}
	// The unknown bug type is queued last.
	assert.Equal(t, []int{0, 1, 5, 6, 7, 8, 9}, sequences)
	assert.Equal(t, "explicit", c.Errors[2].Message)
	assert.Equal(t, "duplicate", c.Errors[3].Message)
}

func TestReadCollectionNestedSourceLines(t *testing.T) {
	input := `{
	  "patterns": [{"type": "A"}],
	  "bugs": [{"type": "A", "rank": 1, "annotations": [
	    {"kind": "class", "className": "com/example/Foo", "sourceFile": "Foo.java", "sourceLines": {"startLine": 1, "endLine": 30}},
	    {"kind": "method", "className": "com.example.Foo$Inner", "methodName": "bar", "sourceLines": {"startLine": 10, "endLine": 12}},
	    {"kind": "field", "className": "com.example.Foo", "fieldName": "f",
	     "sourceLines": {"className": "com.example.Other", "sourceFile": "Other.java", "startLine": 3, "endLine": 3}}
	  ]}]
	}`
	c, err := ReadCollection(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, c.Bugs, 1)
	anns := c.Bugs[0].Annotations

	class := anns[0].(*ClassAnnotation)
	assert.Equal(t, &SourceLineAnnotation{ClassName: "com.example.Foo", SourceFile: "Foo.java", StartLine: 1, EndLine: 30}, class.SourceLines)

	method := anns[1].(*MethodAnnotation)
	assert.Equal(t, &SourceLineAnnotation{ClassName: "com.example.Foo$Inner", SourceFile: "Foo.java", StartLine: 10, EndLine: 12}, method.SourceLines)
	assert.Equal(t, "com/example/Foo.java:[lines 10-12]", method.SourceLines.Format("full", nil))

	field := anns[2].(*FieldAnnotation)
	assert.Equal(t, "com.example.Other", field.SourceLines.ClassName)
	assert.Equal(t, "Other.java", field.SourceLines.SourceFile)
}
