package view

import (
	"fmt"

	"github.com/deepmindcheck/web/internal/workflow"
	"github.com/deepmindcheck/web/pkg/textstat"
)

type Counter struct {
	Count     int    `json:"count"`
	Limit     int    `json:"limit"`
	Tier      string `json:"tier"`
	Message   string `json:"message"`
	Words     int    `json:"words"`
	Sentences int    `json:"sentences"`
}

// BuildCounter renders a length measurement plus draft statistics.
func BuildCounter(st workflow.LengthStatus, stats textstat.Stats, limits workflow.Limits) Counter {
	c := Counter{
		Count:     st.Count,
		Limit:     limits.Max,
		Tier:      string(st.Tier),
		Words:     stats.Words,
		Sentences: stats.Sentences,
	}

	switch st.Tier {
	case workflow.LengthShort:
		c.Message = fmt.Sprintf("Needs %d more characters", st.Needed)
	case workflow.LengthLong:
		c.Message = fmt.Sprintf("Remove %d characters", st.Excess)
	default:
		c.Message = fmt.Sprintf("Ready (%d characters remaining)", st.Remaining)
	}

	return c
}
