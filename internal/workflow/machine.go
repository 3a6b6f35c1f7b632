// Package workflow declares the status state machines shared by consulted
// services, the sales pipeline and labo orders, and validates requested edges
// before anything touches the database.
package workflow

import (
	"fmt"

	"go-dental-erp/internal/model"
	"go-dental-erp/internal/serviceerr"
)

type edge struct {
	from, to string
}

// Machine is a closed set of states plus the legal edge set between them.
// Edges listed in requireReason must carry a non-empty reason string.
type Machine struct {
	name          string
	states        map[string]bool
	edges         map[edge]bool
	requireReason map[edge]bool
}

// NewMachine builds an empty machine over the given states.
func NewMachine(name string, states ...string) *Machine {
	m := &Machine{
		name:          name,
		states:        make(map[string]bool, len(states)),
		edges:         make(map[edge]bool),
		requireReason: make(map[edge]bool),
	}
	for _, s := range states {
		m.states[s] = true
	}
	return m
}

// Edge declares from -> to as legal.
func (m *Machine) Edge(from, to string) *Machine {
	m.edges[edge{from, to}] = true
	return m
}

// EdgeWithReason declares from -> to as legal only with a mandatory reason.
func (m *Machine) EdgeWithReason(from, to string) *Machine {
	e := edge{from, to}
	m.edges[e] = true
	m.requireReason[e] = true
	return m
}

// Validate checks one requested transition. It returns nil when the edge is
// legal and any required reason is present.
func (m *Machine) Validate(from, to, reason string) error {
	if !m.states[to] {
		return serviceerr.Validation(fmt.Sprintf("Trạng thái không hợp lệ: %s", to))
	}
	e := edge{from, to}
	if !m.edges[e] {
		return serviceerr.InvalidTransition(fmt.Sprintf("Không thể chuyển %s từ %q sang %q", m.name, from, to))
	}
	if m.requireReason[e] && reason == "" {
		return serviceerr.Validation("Chuyển lùi trạng thái bắt buộc phải có lý do")
	}
	return nil
}

// ServiceConfirmation: Chưa chốt -> Đã chốt, no reverse edge in the base flow.
var ServiceConfirmation = NewMachine("dịch vụ",
	string(model.ServiceUnconfirmed), string(model.ServiceConfirmed),
).Edge(string(model.ServiceUnconfirmed), string(model.ServiceConfirmed))

// SalesPipeline: ordered funnel. Forward edges (including straight to WON/LOST)
// are free; backward edges require a reason.
var SalesPipeline = buildSalesPipeline()

// pipelineOrder is the funnel position used to classify edges as forward/backward.
var pipelineOrder = []model.PipelineStage{
	model.StageNew,
	model.StageContacted,
	model.StageQuoted,
	model.StageNegotiating,
}

func buildSalesPipeline() *Machine {
	m := NewMachine("giai đoạn",
		string(model.StageNew), string(model.StageContacted), string(model.StageQuoted),
		string(model.StageNegotiating), string(model.StageWon), string(model.StageLost),
	)
	// Any forward move within the funnel, plus any funnel stage -> WON | LOST
	for i, from := range pipelineOrder {
		for _, to := range pipelineOrder[i+1:] {
			m.Edge(string(from), string(to))
		}
		m.Edge(string(from), string(model.StageWon))
		m.Edge(string(from), string(model.StageLost))
	}
	// Backward moves within the funnel need a reason
	for i, from := range pipelineOrder {
		for _, to := range pipelineOrder[:i] {
			m.EdgeWithReason(string(from), string(to))
		}
	}
	// Reopening a closed lead also needs a reason
	for _, closed := range []model.PipelineStage{model.StageWon, model.StageLost} {
		for _, to := range pipelineOrder {
			m.EdgeWithReason(string(closed), string(to))
		}
	}
	return m
}

// LaboFlow: ordered -> sent -> received -> delivered, cancellable from any
// non-terminal state.
var LaboFlow = NewMachine("đơn labo",
	string(model.LaboOrdered), string(model.LaboSent), string(model.LaboReceived),
	string(model.LaboDelivered), string(model.LaboCancelled),
).
	Edge(string(model.LaboOrdered), string(model.LaboSent)).
	Edge(string(model.LaboSent), string(model.LaboReceived)).
	Edge(string(model.LaboReceived), string(model.LaboDelivered)).
	EdgeWithReason(string(model.LaboOrdered), string(model.LaboCancelled)).
	EdgeWithReason(string(model.LaboSent), string(model.LaboCancelled)).
	EdgeWithReason(string(model.LaboReceived), string(model.LaboCancelled))

// IsBackwardStage reports whether moving from -> to goes against the funnel
// direction (used by handlers to surface the reason requirement up front).
func IsBackwardStage(from, to model.PipelineStage) bool {
	pos := func(s model.PipelineStage) int {
		for i, st := range pipelineOrder {
			if st == s {
				return i
			}
		}
		return len(pipelineOrder) // WON/LOST sit past the funnel end
	}
	return pos(to) < pos(from)
}
