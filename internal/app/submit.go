package app

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"sitewiz/internal/state"
	"sitewiz/internal/wizard"
)

// notifySubmitter is the outbound side of the wizard: it prints the finished
// configuration and raises a fire-and-forget acknowledgment.
type notifySubmitter struct {
	out    io.Writer
	output string
	sender notifySender
	log    logr.Logger
}

func (a *App) newSubmitter(settings state.Settings) (*notifySubmitter, error) {
	sender, err := a.notifySender(settings.NotifyBackend)
	if err != nil {
		return nil, err
	}
	output := settings.Output
	if output == "" {
		output = state.OutputText
	}
	return &notifySubmitter{
		out:    a.Stdout,
		output: output,
		sender: sender,
		log:    a.log().WithName("submit"),
	}, nil
}

func (s *notifySubmitter) Submit(_ context.Context, sub wizard.Submission) error {
	if err := writeSubmission(s.out, s.output, sub); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	s.log.V(1).Info("submitted values", "values", sub.Values)
	msg := notifyMessage{
		Title: "sitewiz",
		Site:  sub.Values.WebsiteName,
		Body:  submittedNotice,
	}
	if err := s.sender.Send(msg); err != nil {
		s.log.Error(err, "acknowledgment not delivered", "slug", sub.Slug)
	}
	return nil
}

func writeSubmission(w io.Writer, format string, sub wizard.Submission) error {
	switch format {
	case state.OutputNone:
		return nil
	case state.OutputYAML:
		b, err := state.MarshalAnswers(sub.Values)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case state.OutputText:
		if _, err := fmt.Fprintf(w, "%s\n\n", summaryHeading); err != nil {
			return err
		}
		_, err := io.WriteString(w, wizard.RenderSummaryText(sub.Summary))
		return err
	default:
		return fmt.Errorf("invalid output format %q", format)
	}
}
