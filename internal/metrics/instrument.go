package metrics

import (
	"context"
	"time"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
)

type LLMClient interface {
	GenerateContent(ctx context.Context, req dto.LLMGenerateRequest) (dto.LLMGenerateResponse, error)
}

type ScheduleOperations interface {
	Create(ctx context.Context, title, date, status string) (dto.CreateScheduleResult, error)
	Remove(ctx context.Context, title string) (dto.RemoveScheduleResult, error)
	Modify(ctx context.Context, title string, patch dto.SchedulePatch) (dto.ModifyScheduleResult, error)
	Get(ctx context.Context, title string) (dto.GetScheduleResult, error)
}

type instrumentedLLM struct {
	next     LLMClient
	provider string
	m        *Metrics
}

// InstrumentLLM times every model call made through next.
func (m *Metrics) InstrumentLLM(next LLMClient, provider string) *instrumentedLLM {
	return &instrumentedLLM{next: next, provider: provider, m: m}
}

func (c *instrumentedLLM) GenerateContent(ctx context.Context, req dto.LLMGenerateRequest) (dto.LLMGenerateResponse, error) {
	start := time.Now()
	resp, err := c.next.GenerateContent(ctx, req)
	c.m.llmDuration.WithLabelValues(c.provider).Observe(time.Since(start).Seconds())
	c.m.llmRequests.WithLabelValues(c.provider, outcome(err)).Inc()
	return resp, err
}

type instrumentedSchedules struct {
	next ScheduleOperations
	m    *Metrics
}

// InstrumentSchedules counts schedule operations by tool name. A result that
// reports no match (deleted=false, found=false) still counts as "ok".
func (m *Metrics) InstrumentSchedules(next ScheduleOperations) *instrumentedSchedules {
	return &instrumentedSchedules{next: next, m: m}
}

func (s *instrumentedSchedules) Create(ctx context.Context, title, date, status string) (dto.CreateScheduleResult, error) {
	res, err := s.next.Create(ctx, title, date, status)
	s.m.toolCalls.WithLabelValues("create_schedule", outcome(err)).Inc()
	return res, err
}

func (s *instrumentedSchedules) Remove(ctx context.Context, title string) (dto.RemoveScheduleResult, error) {
	res, err := s.next.Remove(ctx, title)
	s.m.toolCalls.WithLabelValues("remove_schedule", outcome(err)).Inc()
	return res, err
}

func (s *instrumentedSchedules) Modify(ctx context.Context, title string, patch dto.SchedulePatch) (dto.ModifyScheduleResult, error) {
	res, err := s.next.Modify(ctx, title, patch)
	s.m.toolCalls.WithLabelValues("modify_schedule", outcome(err)).Inc()
	return res, err
}

func (s *instrumentedSchedules) Get(ctx context.Context, title string) (dto.GetScheduleResult, error) {
	res, err := s.next.Get(ctx, title)
	s.m.toolCalls.WithLabelValues("get_schedule", outcome(err)).Inc()
	return res, err
}
