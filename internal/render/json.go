package render

import (
	"encoding/json"
	"io"

	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
)

type jsonDocument struct {
	Mode         domain.ScheduleMode `json:"mode"`
	WorkdayStart domain.Clock        `json:"workday_start"`
	WorkdayEnd   domain.Clock        `json:"workday_end"`
	Lanes        int                 `json:"lanes"`
	Blocks       []jsonBlock         `json:"blocks"`
	Diagnostics  []jsonDiagnostic    `json:"diagnostics"`
}

type jsonBlock struct {
	Label string     `json:"label"`
	Tasks []jsonTask `json:"tasks"`
}

type jsonTask struct {
	Name        string        `json:"name"`
	Params      []string      `json:"params,omitempty"`
	DurationMin int           `json:"duration_min"`
	Tags        []string      `json:"tags,omitempty"`
	Priority    string        `json:"priority"`
	DependsOn   []string      `json:"after,omitempty"`
	Start       *domain.Clock `json:"start,omitempty"`
	End         *domain.Clock `json:"end,omitempty"`
	Lane        *int          `json:"lane,omitempty"`
}

type jsonDiagnostic struct {
	contract.Diagnostic
	Text string `json:"message"`
}

func renderJSON(w io.Writer, doc Document) error {
	sched := doc.Schedule
	out := jsonDocument{
		Mode:         sched.Mode,
		WorkdayStart: sched.WorkdayStart,
		WorkdayEnd:   sched.WorkdayEnd,
		Lanes:        sched.Lanes,
		Blocks:       make([]jsonBlock, 0, len(doc.Plan.Blocks)),
		Diagnostics:  make([]jsonDiagnostic, 0, len(sched.Diagnostics)),
	}

	for _, block := range doc.Plan.Blocks {
		jb := jsonBlock{Label: block.Label, Tasks: make([]jsonTask, 0, len(block.Tasks))}
		for _, t := range block.Tasks {
			jt := jsonTask{
				Name:        t.Name,
				Params:      t.Params,
				DurationMin: t.DurationMin,
				Tags:        t.Tags,
				Priority:    t.Priority.String(),
				DependsOn:   t.DependsOn,
			}
			if a, ok := sched.Assignment(t.Name); ok {
				start, end, lane := a.Start, a.End, a.Lane
				jt.Start, jt.End, jt.Lane = &start, &end, &lane
			}
			jb.Tasks = append(jb.Tasks, jt)
		}
		out.Blocks = append(out.Blocks, jb)
	}
	for _, d := range sched.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{Diagnostic: d, Text: d.Message()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
