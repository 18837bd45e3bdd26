package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/vocabmate/vocabmate/internal/session"
	"github.com/vocabmate/vocabmate/internal/speech"
)

// errEnd signals a normal end of the interactive session.
var errEnd = errors.New("end of session")

// SessionCLI runs the interactive dictionary session: it reads intents from
// stdin, forwards them to the session manager, and renders snapshots.
type SessionCLI struct {
	manager      *session.Manager
	speaker      speech.Speaker
	speechLocale string
	renderer     *Renderer
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
}

// NewSessionCLI creates a SessionCLI reading from stdin and writing to
// stdout.
func NewSessionCLI(manager *session.Manager, speaker speech.Speaker, speechLocale string) *SessionCLI {
	return &SessionCLI{
		manager:      manager,
		speaker:      speaker,
		speechLocale: speechLocale,
		renderer:     NewRenderer(),
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
	}
}

// Run drives the session loop until the user quits or the context is
// cancelled.
func (cli *SessionCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()
	defer cli.manager.Close()

	cli.manager.Restore(ctx)
	if !cli.manager.Snapshot().OnboardingSeen {
		cli.renderer.RenderOnboarding(cli.stdoutWriter)
		if err := cli.manager.DismissOnboarding(ctx); err != nil {
			return fmt.Errorf("manager.DismissOnboarding > %w", err)
		}
	}

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := cli.step(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// step handles one line of input.
func (cli *SessionCLI) step(ctx context.Context) error {
	fmt.Fprint(cli.stdoutWriter, "> ")
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errEnd
		}
		return fmt.Errorf("stdinReader.ReadString > %w", err)
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return nil
	}
	if strings.HasPrefix(input, "/") {
		return cli.runCommand(ctx, input)
	}

	// a plain word is a search
	if err := cli.manager.SubmitSearch(ctx, input); err != nil {
		return fmt.Errorf("manager.SubmitSearch > %w", err)
	}
	cli.render()
	return nil
}

func (cli *SessionCLI) runCommand(ctx context.Context, input string) error {
	command, argument, _ := strings.Cut(input, " ")
	argument = strings.TrimSpace(argument)

	switch command {
	case "/quit", "/exit":
		return errEnd

	case "/help":
		cli.printHelp()

	case "/search", "/history", "/favorites", "/wotd":
		cli.manager.SetActivePanel(ctx, panelFor(command))
		cli.render()

	case "/retry":
		cli.manager.RefreshWordOfTheDay(ctx)
		cli.render()

	case "/fav":
		word := argument
		if word == "" {
			state := cli.manager.Snapshot()
			if len(state.Results) == 0 {
				fmt.Fprintln(cli.stdoutWriter, "Nothing to favorite: search for a word first.")
				return nil
			}
			word = state.Results[0].Word
		}
		if err := cli.manager.ToggleFavorite(ctx, word); err != nil {
			return fmt.Errorf("manager.ToggleFavorite > %w", err)
		}
		cli.render()

	case "/draft":
		cli.manager.UpdateQueryDraft(argument)
		state := cli.manager.Snapshot()
		if len(state.Suggestions) == 0 {
			fmt.Fprintln(cli.stdoutWriter, "No suggestions.")
			return nil
		}
		for i, suggestion := range state.Suggestions {
			fmt.Fprintf(cli.stdoutWriter, "%2d: %s\n", i+1, suggestion)
		}
		fmt.Fprintln(cli.stdoutWriter, "Use /pick <n> to search a suggestion.")

	case "/pick":
		state := cli.manager.Snapshot()
		index, err := strconv.Atoi(argument)
		if err != nil || index < 1 || index > len(state.Suggestions) {
			fmt.Fprintln(cli.stdoutWriter, "Usage: /pick <suggestion number>")
			return nil
		}
		if err := cli.manager.SelectSuggestion(ctx, state.Suggestions[index-1]); err != nil {
			return fmt.Errorf("manager.SelectSuggestion > %w", err)
		}
		cli.render()

	case "/lang":
		if argument == "" {
			fmt.Fprintf(cli.stdoutWriter, "Current language: %s\n", cli.manager.Snapshot().Language)
			return nil
		}
		if err := cli.manager.SetLanguage(ctx, argument); err != nil {
			return fmt.Errorf("manager.SetLanguage > %w", err)
		}
		fmt.Fprintf(cli.stdoutWriter, "Language set to %s.\n", argument)

	case "/theme":
		if err := cli.manager.ToggleTheme(ctx); err != nil {
			return fmt.Errorf("manager.ToggleTheme > %w", err)
		}
		fmt.Fprintf(cli.stdoutWriter, "Theme: %s\n", cli.manager.Snapshot().ThemeMode)

	case "/say", "/saydef", "/say2":
		return cli.speak(ctx, command)

	default:
		fmt.Fprintf(cli.stdoutWriter, "Unknown command %s. Type /help for commands.\n", command)
	}
	return nil
}

// speak plays back a part of the primary result. A new playback stops any
// currently playing one.
func (cli *SessionCLI) speak(ctx context.Context, command string) error {
	state := cli.manager.Snapshot()
	if len(state.Results) == 0 {
		fmt.Fprintln(cli.stdoutWriter, "Nothing to pronounce: search for a word first.")
		return nil
	}

	result := state.Results[0]
	var text string
	switch command {
	case "/saydef":
		text = result.DefinitionPrimary
	case "/say2":
		text = result.DefinitionSecondary
	default:
		text = result.Word
	}
	if text == "" {
		fmt.Fprintln(cli.stdoutWriter, "Nothing to pronounce for this result.")
		return nil
	}
	if err := cli.speaker.Speak(ctx, text, cli.speechLocale); err != nil {
		fmt.Fprintf(cli.stdoutWriter, "Playback failed: %v\n", err)
	}
	return nil
}

func (cli *SessionCLI) render() {
	cli.renderer.Render(cli.stdoutWriter, cli.manager.Snapshot())
}

func (cli *SessionCLI) printHelp() {
	fmt.Fprint(cli.stdoutWriter, `Commands:
  <word>            search for a word
  /draft <text>     show history suggestions for a partial word
  /pick <n>         search suggestion n
  /search           show the search panel
  /history          show the search history
  /favorites        show your favorite words
  /wotd             show the word of the day
  /retry            refetch the word of the day
  /fav [word]       toggle a favorite (defaults to the current result)
  /say              pronounce the current word
  /saydef           pronounce the definition
  /say2             pronounce the secondary-language definition
  /lang [code]      show or change the language
  /theme            toggle light/dark mode
  /quit             exit
`)
}

func panelFor(command string) session.Panel {
	switch command {
	case "/history":
		return session.PanelHistory
	case "/favorites":
		return session.PanelFavorites
	case "/wotd":
		return session.PanelWordOfDay
	}
	return session.PanelSearch
}
