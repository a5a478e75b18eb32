package models

import "testing"

func TestStudentRecordFromDocument(t *testing.T) {
	tests := []struct {
		name     string
		doc      map[string]interface{}
		expected StudentRecord
	}{
		{
			name: "Full document",
			doc: map[string]interface{}{
				"id":            "u1",
				"fullName":      "Jane Wanjiku",
				"regNo":         "SCT-2024-001",
				"class":         "Form 3 East",
				"gender":        "Female",
				"dob":           "2008-03-14",
				"email":         "jane.wanjiku@example.com",
				"currentUnits":  3,
				"previousUnits": 5,
			},
			expected: StudentRecord{
				ID:            "u1",
				FullName:      "Jane Wanjiku",
				RegNo:         "SCT-2024-001",
				Class:         "Form 3 East",
				Gender:        "Female",
				DOB:           "2008-03-14",
				Email:         "jane.wanjiku@example.com",
				CurrentUnits:  3,
				PreviousUnits: 5,
			},
		},
		{
			name: "JSON-decoded numbers arrive as float64",
			doc: map[string]interface{}{
				"id":            "u2",
				"currentUnits":  float64(4),
				"previousUnits": float64(2),
			},
			expected: StudentRecord{ID: "u2", CurrentUnits: 4, PreviousUnits: 2},
		},
		{
			name:     "Missing fields default to zero values",
			doc:      map[string]interface{}{"id": "u3"},
			expected: StudentRecord{ID: "u3"},
		},
		{
			name: "Wrong-typed fields are ignored",
			doc: map[string]interface{}{
				"id":           "u4",
				"fullName":     42,
				"currentUnits": "three",
			},
			expected: StudentRecord{ID: "u4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StudentRecordFromDocument(tt.doc)
			if got != tt.expected {
				t.Errorf("StudentRecordFromDocument() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestStudentRecordToDocumentRoundTrip(t *testing.T) {
	rec := StudentRecord{
		ID:            "u1",
		FullName:      "Brian Otieno",
		RegNo:         "SCT-2024-002",
		Class:         "Form 2 West",
		Gender:        "Male",
		DOB:           "2009-07-01",
		Email:         "brian.otieno@example.com",
		CurrentUnits:  2,
		PreviousUnits: 1,
	}

	doc := rec.ToDocument()
	if _, ok := doc["id"]; ok {
		t.Error("id must not be part of the persisted payload")
	}

	doc["id"] = rec.ID
	got := StudentRecordFromDocument(doc)
	if got != rec {
		t.Errorf("round trip = %+v, expected %+v", got, rec)
	}
}
