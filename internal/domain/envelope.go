package domain

import "encoding/json"

// Envelope is the uniform response shape every tool returns, JSON-encoded.
// The primary ID field name varies per tool (document_id, payment_id, ...),
// so the envelope renders itself from a map rather than a fixed struct.
type Envelope struct {
	Success         bool
	PrimaryField    string
	PrimaryID       string // empty renders as null
	Message         string
	TransferToHuman bool
	// Extra carries per-operation entity data merged into the top level of
	// the rendered object. Keys colliding with the fixed fields are ignored.
	Extra map[string]any
}

// OK builds a success envelope.
func OK(primaryField, primaryID, message string) Envelope {
	return Envelope{Success: true, PrimaryField: primaryField, PrimaryID: primaryID, Message: message}
}

// Fail builds a failure envelope from a Failure value.
func Fail(primaryField string, f *Failure) Envelope {
	return Envelope{
		Success:         false,
		PrimaryField:    primaryField,
		Message:         f.Text(),
		TransferToHuman: f.TransferToHuman,
	}
}

// Encode renders the envelope as a JSON string. Encoding cannot realistically
// fail for the value types involved; on the impossible path a minimal
// hand-built error object is returned so callers always get valid JSON.
func (e Envelope) Encode() string {
	obj := map[string]any{
		"success": e.Success,
		"message": e.Message,
	}
	if e.PrimaryField != "" {
		if e.PrimaryID == "" {
			obj[e.PrimaryField] = nil
		} else {
			obj[e.PrimaryField] = e.PrimaryID
		}
	}
	if e.TransferToHuman {
		obj["transfer_to_human"] = true
	}
	for k, v := range e.Extra {
		if _, taken := obj[k]; !taken {
			obj[k] = v
		}
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return `{"success": false, "message": "internal error: response encoding failed"}`
	}
	return string(data)
}
