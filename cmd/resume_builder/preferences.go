package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/preferences"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	prefsStore    string
	autofillSave  bool
	errInputEnded = errors.New("input ended before the wizard finished")
)

var preferencesCmd = &cobra.Command{
	Use:     "preferences",
	Aliases: []string{"prefs"},
	Short:   "Manage the saved preferences profile",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved preferences profile",
	RunE: withPreferences(func(cmd *cobra.Command, s *session.Session, p *observability.Printer) error {
		p.PrintPreferences(s.Preferences().Load(cmd.Context()))
		return nil
	}),
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved preferences profile",
	RunE: withPreferences(func(cmd *cobra.Command, s *session.Session, _ *observability.Printer) error {
		if !s.Preferences().Clear(cmd.Context()) {
			return fmt.Errorf("preferences could not be cleared")
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Preferences cleared")
		return nil
	}),
}

var prefsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Create or update the preferences profile step by step",
	RunE: withPreferences(func(cmd *cobra.Command, s *session.Session, p *observability.Printer) error {
		saved, persisted, err := runWizard(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), s.Preferences())
		if err != nil {
			return err
		}
		p.PrintPreferences(saved)
		if !persisted {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Warning: preferences could not be saved and will be lost on exit")
		}
		return nil
	}),
}

var prefsAutofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Fill the --resume document from the saved profile",
	RunE: withPreferences(func(cmd *cobra.Command, s *session.Session, p *observability.Printer) error {
		doc, err := s.Autofill(cmd.Context())
		if err != nil {
			return err
		}
		p.PrintDocument(doc)
		if autofillSave {
			return saveResume(s)
		}
		return nil
	}),
}

func init() {
	preferencesCmd.PersistentFlags().StringVar(&prefsStore, "store", "", "Preferences store: file, memory, redis or postgres")
	prefsAutofillCmd.Flags().BoolVar(&autofillSave, "save", false, "Write the updated document back to --resume")

	preferencesCmd.AddCommand(prefsShowCmd, prefsClearCmd, prefsWizardCmd, prefsAutofillCmd)
	rootCmd.AddCommand(preferencesCmd)
}

func withPreferences(run sessionRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		_, _, s, cleanup, err := setup(cmd.Context(), config.Config{Store: prefsStore})
		if err != nil {
			return err
		}
		defer cleanup()
		return run(cmd, s, observability.NewPrinter(cmd.OutOrStdout()))
	}
}

// prompter reads answers line by line
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// ask prints a question and returns the trimmed answer, or current when the answer is blank
func (p *prompter) ask(question, current string) (string, error) {
	if current != "" {
		_, _ = fmt.Fprintf(p.out, "%s [%s]: ", question, current)
	} else {
		_, _ = fmt.Fprintf(p.out, "%s: ", question)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errInputEnded
	}
	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// runWizard walks the preferences steps, starting from the saved profile when one exists
func runWizard(ctx context.Context, in io.Reader, out io.Writer, mgr *preferences.Manager) (*types.PreferencesProfile, bool, error) {
	wizard := preferences.NewWizard(mgr.Load(ctx))
	printer := observability.NewPrinter(out)
	p := &prompter{in: bufio.NewScanner(in), out: out}

	for {
		step := wizard.Current()
		printer.PrintWizardStep(wizard.Index(), step)
		if err := answerStep(p, wizard, step); err != nil {
			return nil, false, err
		}

		done, err := wizard.Next()
		if err != nil {
			_, _ = fmt.Fprintf(out, "%v\n", err)
			continue
		}
		if done {
			break
		}
	}

	profile, err := wizard.Complete()
	if err != nil {
		return nil, false, err
	}
	return mgr.Save(ctx, *profile)
}

func answerStep(p *prompter, w *preferences.Wizard, step preferences.Step) error {
	draft := w.Draft()

	switch step.ID {
	case preferences.StepPersonal:
		contact := draft.PersonalInfo
		fields := []struct {
			question string
			value    *string
		}{
			{"Full name", &contact.FullName},
			{"Email", &contact.Email},
			{"Phone", &contact.Phone},
			{"Website", &contact.Website},
			{"LinkedIn", &contact.LinkedIn},
		}
		for _, f := range fields {
			answer, err := p.ask(f.question, *f.value)
			if err != nil {
				return err
			}
			*f.value = answer
		}
		w.SetPersonal(contact)

	case preferences.StepExperienceLevel:
		answer, err := p.ask("Level", string(draft.ExperienceLevel))
		if err != nil {
			return err
		}
		if err := w.SetExperienceLevel(types.ExperienceLevel(strings.ToLower(answer))); err != nil {
			_, _ = fmt.Fprintf(p.out, "%v\n", err)
		}

	case preferences.StepIndustry:
		answer, err := p.ask("Industry", draft.IndustryFocus)
		if err != nil {
			return err
		}
		w.SetIndustry(answer)

	case preferences.StepJobTitles, preferences.StepTechStack, preferences.StepSkills:
		field, current := listForStep(step.ID, draft)
		answer, err := p.ask("Comma-separated values to add", strings.Join(current, ", "))
		if err != nil {
			return err
		}
		for _, value := range strings.Split(answer, ",") {
			if _, err := w.Add(field, value); err != nil {
				return err
			}
		}

	case preferences.StepLocation:
		answer, err := p.ask("Location", draft.Location)
		if err != nil {
			return err
		}
		w.SetLocation(answer)
	}
	return nil
}

func listForStep(id preferences.StepID, draft types.PreferencesProfile) (preferences.ListField, []string) {
	switch id {
	case preferences.StepJobTitles:
		return preferences.ListJobTitles, draft.PreferredJobTitles
	case preferences.StepTechStack:
		return preferences.ListTechStack, draft.TechStack
	default:
		return preferences.ListSkills, draft.Skills
	}
}
