package services

import (
	"github.com/GregMSThompson/schedule-assistant/internal/dto"
)

const (
	toolCreateSchedule = "create_schedule"
	toolRemoveSchedule = "remove_schedule"
	toolModifySchedule = "modify_schedule"
	toolGetSchedule    = "get_schedule"
)

func toolSchemas() []dto.LLMTool {
	return []dto.LLMTool{
		{
			Name:        toolCreateSchedule,
			Description: "Create a new schedule entry in the schedule database.",
			Parameters: &dto.LLMSchema{
				Type: "object",
				Properties: map[string]*dto.LLMSchema{
					"title":  {Type: "string", Description: "Schedule title, e.g. '회의'."},
					"date":   {Type: "string", Description: "YYYY-MM-DD date of the schedule."},
					"status": {Type: "string", Description: "Progress status such as '시작 전', '진행 중', '완료'. Defaults to '시작 전'."},
				},
				Required: []string{"title", "date"},
			},
		},
		{
			Name:        toolRemoveSchedule,
			Description: "Delete the schedule whose title matches exactly.",
			Parameters: &dto.LLMSchema{
				Type: "object",
				Properties: map[string]*dto.LLMSchema{
					"title": {Type: "string", Description: "Exact title of the schedule to delete."},
				},
				Required: []string{"title"},
			},
		},
		{
			Name:        toolModifySchedule,
			Description: "Change the title, date, or status of the schedule whose title matches exactly. Only the provided fields are changed.",
			Parameters: &dto.LLMSchema{
				Type: "object",
				Properties: map[string]*dto.LLMSchema{
					"title":      {Type: "string", Description: "Exact current title of the schedule."},
					"new_title":  {Type: "string", Description: "New title. Omit to keep the current one."},
					"new_date":   {Type: "string", Description: "New YYYY-MM-DD date. Omit to keep the current one."},
					"new_status": {Type: "string", Description: "New status. Omit to keep the current one."},
				},
				Required: []string{"title"},
			},
		},
		{
			Name:        toolGetSchedule,
			Description: "Look up schedules by title. Omit the title to list schedules.",
			Parameters: &dto.LLMSchema{
				Type: "object",
				Properties: map[string]*dto.LLMSchema{
					"title": {Type: "string", Description: "Title or part of a title to search for."},
				},
			},
		},
	}
}

func isValidToolName(name string) bool {
	switch name {
	case toolCreateSchedule, toolRemoveSchedule, toolModifySchedule, toolGetSchedule:
		return true
	default:
		return false
	}
}
