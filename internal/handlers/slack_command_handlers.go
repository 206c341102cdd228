package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	slackfmt "medgpt-backend/internal/integrations/slack"
	"medgpt-backend/internal/services"
	"medgpt-backend/pkg/httputil"

	"github.com/slack-go/slack"
)

const slackUsage = "Usage: `/medgpt-check Lisinopril, Amlodipine` lists the interactions between two or more medications."

// SlackCommandHandlers answers the interaction-check slash command.
type SlackCommandHandlers struct {
	interactions  InteractionService
	signingSecret string
}

// NewSlackCommandHandlers creates the handler. Requests are verified
// against signingSecret.
func NewSlackCommandHandlers(svc InteractionService, signingSecret string) *SlackCommandHandlers {
	return &SlackCommandHandlers{interactions: svc, signingSecret: signingSecret}
}

// HandleSlashCommand handles POST /slack/commands. The command text is a
// comma separated list of medication names or IDs.
func (h *SlackCommandHandlers) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	r.Body.Close()

	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		log.Printf("WARN [SlackCommands] Rejected request: %v", err)
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid Slack signature")
		return
	}
	if _, err := verifier.Write(body); err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to verify request")
		return
	}
	if err := verifier.Ensure(); err != nil {
		log.Printf("WARN [SlackCommands] Signature mismatch: %v", err)
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid Slack signature")
		return
	}

	// Restore the body for form parsing.
	r.Body = io.NopCloser(bytes.NewReader(body))
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid slash command payload")
		return
	}

	var refs []string
	for _, part := range strings.Split(cmd.Text, ",") {
		if p := strings.TrimSpace(part); p != "" {
			refs = append(refs, p)
		}
	}
	if len(refs) == 0 {
		httputil.RespondJSON(w, http.StatusOK, slack.Msg{ResponseType: slack.ResponseTypeEphemeral, Text: slackUsage})
		return
	}

	report, err := h.interactions.Check(r.Context(), refs, false)
	if err != nil {
		// Slack shows non-200 replies as a generic failure, so user
		// errors go back as ephemeral text.
		text := "Sorry, the interaction check failed. Please try again later."
		switch {
		case errors.Is(err, services.ErrUnknownMedication),
			errors.Is(err, services.ErrDuplicateMedication),
			errors.Is(err, services.ErrTooFewMedications):
			text = err.Error() + "\n" + slackUsage
		default:
			log.Printf("ERROR [SlackCommands] Check failed for %s: %v", cmd.UserID, err)
		}
		httputil.RespondJSON(w, http.StatusOK, slack.Msg{ResponseType: slack.ResponseTypeEphemeral, Text: text})
		return
	}

	log.Printf("[SlackCommands] %s checked %d medications from %s", cmd.UserID, len(refs), cmd.ChannelID)
	httputil.RespondJSON(w, http.StatusOK, slack.Msg{
		ResponseType: slack.ResponseTypeInChannel,
		Text:         slackfmt.FormatReport(report),
	})
}
