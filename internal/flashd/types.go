package flashd

import "time"

// Drive describes a block device the daemon can write to.
type Drive struct {
	Device      string `json:"device"`
	Description string `json:"description"`
	DisplayName string `json:"displayName"`
	Size        uint64 `json:"size"`
	IsSystem    bool   `json:"isSystem"`
	IsReadOnly  bool   `json:"isReadOnly"`
}

// DriveListResponse mirrors /api/drives.
type DriveListResponse struct {
	Drives []Drive `json:"drives"`
}

// Progress mirrors the in-flight part of /api/flash/state.
type Progress struct {
	Type       string   `json:"type"`
	Percentage *float64 `json:"percentage,omitempty"`
	Position   *uint64  `json:"position,omitempty"`
	Failed     int      `json:"failed"`
	Speed      *float64 `json:"speed,omitempty"`
	ETASeconds *float64 `json:"eta,omitempty"`
}

// ETADuration converts the ETA to a duration. ok is false when the daemon did
// not report one.
func (p Progress) ETADuration() (time.Duration, bool) {
	if p.ETASeconds == nil || *p.ETASeconds < 0 {
		return 0, false
	}
	return time.Duration(*p.ETASeconds * float64(time.Second)), true
}

// Result summarises a finished flash session.
type Result struct {
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
	Cancelled  bool   `json:"cancelled"`
	Error      string `json:"error,omitempty"`
}

// Status mirrors /api/flash/state and the stream payloads.
type Status struct {
	Session  string   `json:"session"`
	Flashing bool     `json:"flashing"`
	Progress Progress `json:"progress"`
	Result   *Result  `json:"result,omitempty"`
}

// FlashRequest is the body of POST /api/flash.
type FlashRequest struct {
	Image    string   `json:"image"`
	Devices  []string `json:"devices"`
	Validate bool     `json:"validate"`
	Unmount  bool     `json:"unmount"`
}
