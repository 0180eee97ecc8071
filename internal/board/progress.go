package board

import (
	"kanban/internal/deadline"
	"kanban/internal/models"
)

// Progress aggregates a board's tasks for the dashboard charts.
type Progress struct {
	BoardID   string                 `json:"boardId"`
	Total     int                    `json:"total"`
	ByStatus  map[models.Status]int  `json:"byStatus"`
	Deadlines map[deadline.Class]int `json:"deadlines"`
	Percent   float64                `json:"percent"`
}

// BoardProgress summarizes task counts per column and per deadline
// class. Deadline classes are computed fresh against the current time,
// never read from the tasks.
func (s *Service) BoardProgress(boardID string) Progress {
	p := Progress{
		BoardID:   boardID,
		ByStatus:  map[models.Status]int{},
		Deadlines: map[deadline.Class]int{},
	}

	now := s.now()
	for _, t := range s.TasksByBoard(boardID) {
		p.Total++
		p.ByStatus[t.Status]++
		p.Deadlines[deadline.Classify(t, now)]++
	}
	if p.Total > 0 {
		p.Percent = float64(p.ByStatus[models.StatusDone]) / float64(p.Total) * 100
	}
	return p
}
