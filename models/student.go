package models

// StudentsCollection is the document collection holding one StudentRecord
// per student, keyed by the user's id.
const StudentsCollection = "students"

// StudentRecord is the typed view of a student's profile and unit
// registration document. The authoritative copy lives in the document store;
// this struct is rebuilt from it on every fetch.
type StudentRecord struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	RegNo         string `json:"regNo"`
	Class         string `json:"class"`
	Gender        string `json:"gender"`
	DOB           string `json:"dob"`
	Email         string `json:"email"`
	CurrentUnits  int    `json:"currentUnits"`
	PreviousUnits int    `json:"previousUnits"`
}

// StudentRecordFromDocument builds a StudentRecord from a raw document map
// as returned by the document store (id field attached).
func StudentRecordFromDocument(doc map[string]interface{}) StudentRecord {
	rec := StudentRecord{
		ID:            stringField(doc, "id"),
		FullName:      stringField(doc, "fullName"),
		RegNo:         stringField(doc, "regNo"),
		Class:         stringField(doc, "class"),
		Gender:        stringField(doc, "gender"),
		DOB:           stringField(doc, "dob"),
		Email:         stringField(doc, "email"),
		CurrentUnits:  intField(doc, "currentUnits"),
		PreviousUnits: intField(doc, "previousUnits"),
	}
	return rec
}

// ToDocument returns the persistable payload of the record. The id is kept
// out of the payload; it is the document key.
func (r StudentRecord) ToDocument() map[string]interface{} {
	return map[string]interface{}{
		"fullName":      r.FullName,
		"regNo":         r.RegNo,
		"class":         r.Class,
		"gender":        r.Gender,
		"dob":           r.DOB,
		"email":         r.Email,
		"currentUnits":  r.CurrentUnits,
		"previousUnits": r.PreviousUnits,
	}
}

func stringField(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

// intField tolerates the float64 that encoding/json produces for numbers
func intField(doc map[string]interface{}, key string) int {
	switch v := doc[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
