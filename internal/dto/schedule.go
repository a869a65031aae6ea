package dto

// Tool argument payloads, decoded from the model's JSON argument string.

type CreateScheduleArgs struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Status string `json:"status,omitempty"`
}

type RemoveScheduleArgs struct {
	Title string `json:"title"`
}

type ModifyScheduleArgs struct {
	Title     string  `json:"title"`
	NewTitle  *string `json:"new_title,omitempty"`
	NewDate   *string `json:"new_date,omitempty"`
	NewStatus *string `json:"new_status,omitempty"`
}

type GetScheduleArgs struct {
	Title *string `json:"title,omitempty"`
}

// SchedulePatch lists the fields to overwrite; nil fields are left untouched.
type SchedulePatch struct {
	Title  *string `json:"title,omitempty"`
	Date   *string `json:"date,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (p SchedulePatch) IsEmpty() bool {
	return p.Title == nil && p.Date == nil && p.Status == nil
}

// Tool results, serialized back to the model.

type ScheduleView struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

type CreateScheduleResult struct {
	Created bool   `json:"created"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Status  string `json:"status"`
}

type RemoveScheduleResult struct {
	Deleted bool   `json:"deleted"`
	Title   string `json:"title,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type ModifyScheduleResult struct {
	Modified bool           `json:"modified"`
	Title    string         `json:"title,omitempty"`
	Updated  *SchedulePatch `json:"updated,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

type GetScheduleResult struct {
	Found     bool           `json:"found"`
	Schedules []ScheduleView `json:"schedules,omitempty"`
	Message   string         `json:"message,omitempty"`
}
