// Package wizard holds the website configuration wizard state machine.
//
// A Controller owns the current step, the form values and the review flag.
// Every mutation goes through one of its methods so a surface (TUI, line
// prompts, tests) never touches state directly. The controller is not safe
// for concurrent use.
package wizard

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"sitewiz/internal/domain"
)

// ErrNotReviewing is returned by Submit before the final step was passed.
var ErrNotReviewing = errors.New("configuration has not reached review")

type Phase int

const (
	PhaseEditing Phase = iota
	PhaseReviewing
)

func (p Phase) String() string {
	if p == PhaseReviewing {
		return "reviewing"
	}
	return "editing"
}

// State is a read-only snapshot of the controller.
type State struct {
	Phase     Phase
	StepIndex int
	Complete  bool
	Values    domain.FormValues
}

// Submitter receives the finished configuration.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

type Option func(*Controller)

func WithValues(v domain.FormValues) Option {
	return func(c *Controller) {
		c.values = v.Clone()
	}
}

func WithSubmitter(s Submitter) Option {
	return func(c *Controller) {
		c.submitter = s
	}
}

func WithLogger(log logr.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

type Controller struct {
	steps     []domain.Step
	values    domain.FormValues
	current   int
	complete  bool
	submitter Submitter
	log       logr.Logger
	now       func() time.Time
}

func New(opts ...Option) *Controller {
	c := &Controller{
		steps: domain.Steps(),
		log:   logr.Discard(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) UpdateField(field domain.Field, value string) {
	if !field.Valid() {
		return
	}
	c.values.Set(field, value)
	c.log.V(2).Info("field updated", "field", field.String(), "value", value)
}

func (c *Controller) UpdateFeatures(values []string) {
	c.values.KeyFeatures = domain.DedupeFeatures(values)
	c.log.V(2).Info("field updated", "field", domain.FieldKeyFeatures.String(), "value", c.values.KeyFeatures)
}

// ToggleFeature adds value to the selected features, or removes it when it is
// already selected. Selection order is kept.
func (c *Controller) ToggleFeature(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	out := make([]string, 0, len(c.values.KeyFeatures)+1)
	removed := false
	for _, f := range c.values.KeyFeatures {
		if f == value {
			removed = true
			continue
		}
		out = append(out, f)
	}
	if !removed {
		out = append(out, value)
	}
	c.values.KeyFeatures = out
	c.log.V(2).Info("feature toggled", "value", value, "selected", !removed)
}

// IsStepComplete reports whether step i may be left going forward.
func (c *Controller) IsStepComplete(i int) bool {
	if i < 0 || i >= len(c.steps) {
		return false
	}
	return stepComplete(c.steps[i], c.values)
}

func stepComplete(step domain.Step, v domain.FormValues) bool {
	if !step.Required {
		return true
	}
	if step.Kind == domain.KindMultiSelect {
		return len(domain.DedupeFeatures(v.KeyFeatures)) > 0
	}
	value := v.Get(step.Field)
	if strings.TrimSpace(value) == "" {
		return false
	}
	if step.HasCustomInput(value) {
		return strings.TrimSpace(v.Get(step.CustomField)) != ""
	}
	return true
}

// GoNext advances one step, or enters review from the last step. The caller
// is expected to gate it on CanAdvance.
func (c *Controller) GoNext() {
	if c.complete {
		return
	}
	if c.current < len(c.steps)-1 {
		c.moveTo(c.current + 1)
		return
	}
	c.complete = true
	c.log.V(1).Info("entered review", "step", c.current)
}

func (c *Controller) GoPrevious() {
	if c.complete || c.current == 0 {
		return
	}
	c.moveTo(c.current - 1)
}

// JumpToStep moves directly to step j. Moving back is always allowed; moving
// forward requires the currently occupied step to be complete, regardless of
// the steps in between. It reports whether the move happened.
func (c *Controller) JumpToStep(j int) bool {
	if c.complete || j < 0 || j >= len(c.steps) {
		c.log.V(1).Info("jump rejected", "from", c.current, "to", j, "reviewing", c.complete)
		return false
	}
	if j > c.current && !c.IsStepComplete(c.current) {
		c.log.V(1).Info("jump rejected", "from", c.current, "to", j, "reason", "current step incomplete")
		return false
	}
	c.moveTo(j)
	return true
}

func (c *Controller) moveTo(j int) {
	if j == c.current {
		return
	}
	c.log.V(1).Info("step changed", "from", c.steps[c.current].Field.String(), "to", c.steps[j].Field.String())
	c.current = j
}

// ResetToEdit leaves review and returns to the first step. Values are kept.
func (c *Controller) ResetToEdit() {
	c.complete = false
	c.current = 0
	c.log.V(1).Info("editing configuration")
}

// Submit hands the finished configuration to the submitter. It does not
// change the controller state.
func (c *Controller) Submit(ctx context.Context) error {
	if !c.complete {
		return ErrNotReviewing
	}
	sub := newSubmission(c.values, c.now())
	c.log.Info("configuration submitted", "website", sub.Values.WebsiteName, "slug", sub.Slug)
	if c.submitter == nil {
		return nil
	}
	return c.submitter.Submit(ctx, sub)
}

func (c *Controller) State() State {
	phase := PhaseEditing
	if c.complete {
		phase = PhaseReviewing
	}
	return State{
		Phase:     phase,
		StepIndex: c.current,
		Complete:  c.complete,
		Values:    c.values.Clone(),
	}
}

func (c *Controller) Values() domain.FormValues {
	return c.values.Clone()
}

func (c *Controller) Steps() []domain.Step {
	out := make([]domain.Step, len(c.steps))
	copy(out, c.steps)
	return out
}

func (c *Controller) StepCount() int {
	return len(c.steps)
}

func (c *Controller) StepIndex() int {
	return c.current
}

func (c *Controller) CurrentStep() domain.Step {
	return c.steps[c.current]
}

func (c *Controller) IsReviewing() bool {
	return c.complete
}

func (c *Controller) IsLastStep() bool {
	return c.current == len(c.steps)-1
}

// CanAdvance reports whether Next is enabled on the current step.
func (c *Controller) CanAdvance() bool {
	return !c.complete && c.IsStepComplete(c.current)
}

// Progress is the rounded percentage of the current step position.
func (c *Controller) Progress() int {
	return int(math.Round(float64(c.current+1) / float64(len(c.steps)) * 100))
}

// MissingSteps lists the steps that would block the walk to review.
func (c *Controller) MissingSteps() []domain.Step {
	var out []domain.Step
	for _, step := range c.steps {
		if !stepComplete(step, c.values) {
			out = append(out, step)
		}
	}
	return out
}
