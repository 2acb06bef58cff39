package validation

import "github.com/imrishuroy/go-attendance-punch/internal/attendance"

// RecordPunchRequest is the payload for POST /attendance.
// Fields are pointers so a missing key can be told apart from an empty string;
// empty strings are accepted.
type RecordPunchRequest struct {
	UserID    *string `json:"userId" validate:"required"`    // partition key
	Timestamp *string `json:"timestamp" validate:"required"` // sort key, no format check
	Type      *string `json:"type" validate:"required"`      // e.g. clock-in / clock-out
}

// Punch converts a validated request into the stored entity.
func (r RecordPunchRequest) Punch() attendance.Punch {
	return attendance.Punch{
		UserID:    deref(r.UserID),
		Timestamp: deref(r.Timestamp),
		Type:      deref(r.Type),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
