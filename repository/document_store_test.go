package repository

import (
	"reflect"
	"testing"

	"github.com/Mathew-2006/school-website/models"
)

func testDocument(collection, id string, data map[string]interface{}) models.Document {
	return models.Document{Collection: collection, DocID: id, Data: models.JSONMap(data)}
}

func TestQueryOperator(t *testing.T) {
	tests := []struct {
		operator string
		sqlOp    string
		valid    bool
	}{
		{"==", "=", true},
		{"!=", "<>", true},
		{"<", "<", true},
		{"<=", "<=", true},
		{">", ">", true},
		{">=", ">=", true},
		{"=", "", false},
		{"in", "", false},
		{"; DROP TABLE documents", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.operator, func(t *testing.T) {
			sqlOp, err := QueryOperator(tt.operator)
			if tt.valid {
				if err != nil {
					t.Fatalf("QueryOperator(%q) unexpected error: %v", tt.operator, err)
				}
				if sqlOp != tt.sqlOp {
					t.Errorf("QueryOperator(%q) = %q, expected %q", tt.operator, sqlOp, tt.sqlOp)
				}
			} else if err == nil {
				t.Errorf("QueryOperator(%q) should be rejected", tt.operator)
			}
		})
	}
}

func TestMergeDocument(t *testing.T) {
	base := map[string]interface{}{
		"fullName": "A",
		"class":    "X",
		"gender":   "Female",
	}
	partial := map[string]interface{}{
		"class": "Y",
		"dob":   "2008-03-14",
	}

	merged := MergeDocument(base, partial)

	expected := map[string]interface{}{
		"fullName": "A",
		"class":    "Y",
		"gender":   "Female",
		"dob":      "2008-03-14",
	}
	if !reflect.DeepEqual(merged, expected) {
		t.Errorf("MergeDocument = %v, expected %v", merged, expected)
	}

	// Inputs must not be mutated
	if base["class"] != "X" {
		t.Error("MergeDocument mutated the base map")
	}
	if _, ok := partial["fullName"]; ok {
		t.Error("MergeDocument mutated the partial map")
	}
}

func TestAttachID(t *testing.T) {
	doc := testDocument("students", "u1", map[string]interface{}{
		"fullName": "A",
		"class":    "X",
	})

	out := attachID(doc)

	expected := map[string]interface{}{
		"id":       "u1",
		"fullName": "A",
		"class":    "X",
	}
	if !reflect.DeepEqual(out, expected) {
		t.Errorf("attachID = %v, expected %v", out, expected)
	}

	// The stored payload keeps the id out
	if _, ok := doc.Data["id"]; ok {
		t.Error("attachID mutated the document payload")
	}
}
