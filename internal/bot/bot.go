// Package bot wires the Telegram surface: command dispatch, the entry
// flow, keyboards, and callback handling.
package bot

import (
	"context"
	"log/slog"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/spystrach/interimBot/internal/flow"
	"github.com/spystrach/interimBot/internal/mail"
	"github.com/spystrach/interimBot/internal/service"
)

// Callback data namespaces: s_ for deletion-menu buttons, e_ for the
// export confirmation.
const (
	deletePrefix   = "s_"
	exportPrefix   = "e_"
	cancelArg      = "annuler"
	exportContinue = "continuer"
)

const helpText = `Commandes disponibles:
/nouvelle_mission : enregistre une nouvelle mission
/affiche_missions : affiche toutes les missions
/supprime_mission : supprime une mission
/horaires_mail : envoie par mail les horaires réels pour l'agence
/exporte_excel : renvoit le fichier excel rempli
/help : affiche l'aide`

// api is the slice of the Telegram client the handlers use. *tgbotapi.BotAPI
// satisfies it; tests drive the handlers with a fake.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// SMTPSource returns the mail relay settings. It is called at send time
// so credentials are never held between sends.
type SMTPSource func() (mail.SMTP, error)

// Bot dispatches inbound updates to their handlers, one at a time.
type Bot struct {
	api        api
	flow       *flow.Engine
	missions   service.MissionService
	smtp       SMTPSource
	exportPath string
	logger     *slog.Logger
}

// New assembles the dispatcher. exportPath is where the workbook is
// written before upload (the file is removed after the send).
func New(client api, engine *flow.Engine, missions service.MissionService, smtp SMTPSource, exportPath string, logger *slog.Logger) *Bot {
	return &Bot{
		api:        client,
		flow:       engine,
		missions:   missions,
		smtp:       smtp,
		exportPath: exportPath,
		logger:     logger,
	}
}

// Run consumes updates until the channel closes or ctx is done. Handler
// errors are logged; the loop keeps serving.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := b.handleUpdate(ctx, update); err != nil {
				b.logger.Error("handling update", "error", err)
			}
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		return b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		return b.handleMessage(ctx, update.Message)
	}
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	if cmd, ok := parseCommand(msg.Text); ok {
		return b.handleCommand(ctx, chatID, cmd)
	}

	reply, consumed := b.flow.HandleMessage(ctx, chatID, msg.Text)
	if !consumed {
		return nil
	}
	return b.sendReply(chatID, reply)
}

// parseCommand extracts the command name from a "/command" message,
// stripping any "@botname" suffix.
func parseCommand(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text)[0][1:]
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return cmd, cmd != ""
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, cmd string) error {
	switch cmd {
	case "start":
		return b.sendText(chatID, "Coucou !\nAppuis sur '/' pour voir les commandes disponibles")
	case "nouvelle_mission":
		return b.sendReply(chatID, b.flow.Start(chatID))
	case "stop":
		reply, active := b.flow.Cancel(chatID)
		if !active {
			return nil
		}
		return b.sendReply(chatID, reply)
	case "affiche_missions":
		return b.listMissions(ctx, chatID)
	case "supprime_mission":
		return b.deletionMenu(ctx, chatID)
	case "horaires_mail":
		return b.mailHours(ctx, chatID)
	case "exporte_excel":
		return b.confirmExport(ctx, chatID)
	case "help":
		return b.sendText(chatID, helpText)
	}
	// Unknown commands are ignored, like any other unmatched message.
	return nil
}

func (b *Bot) listMissions(ctx context.Context, chatID int64) error {
	text, err := b.missions.ListText(ctx)
	if err != nil {
		return err
	}
	return b.sendText(chatID, text)
}

func (b *Bot) deletionMenu(ctx context.Context, chatID int64) error {
	entries, err := b.missions.DeletionEntries(ctx)
	if err != nil {
		return err
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entries)+1)
	for _, e := range entries {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(e.Label, deletePrefix+e.Key),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("annuler", deletePrefix+cancelArg),
	))

	msg := tgbotapi.NewMessage(chatID, "sélectionnes pour supprimer :")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) mailHours(ctx context.Context, chatID int64) error {
	cfg, err := b.smtp()
	if err != nil {
		return err
	}
	if err := b.missions.SendSummary(ctx, cfg); err != nil {
		b.logger.Error("sending summary mail", "error", err)
		return b.sendText(chatID, "erreur dans l'envoi du mail :\n"+err.Error())
	}
	return b.sendText(chatID, "mail envoyé")
}

func (b *Bot) confirmExport(ctx context.Context, chatID int64) error {
	n, err := b.missions.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return b.sendText(chatID, "pas de mission enregistrées")
	}

	msg := tgbotapi.NewMessage(chatID,
		"veux-tu créer le fichier Excel ?\nAttention, il sera impossible ensuite d'envoyer le mail")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("continuer", exportPrefix+exportContinue),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("annuler", exportPrefix+cancelArg),
		),
	)
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Acknowledge first: some clients hang on an unanswered query.
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Error("acknowledging callback", "error", err)
	}

	data := query.Data
	switch {
	case strings.HasPrefix(data, deletePrefix):
		return b.deleteCallback(ctx, query, strings.TrimPrefix(data, deletePrefix))
	case strings.HasPrefix(data, exportPrefix):
		return b.exportCallback(ctx, query, strings.TrimPrefix(data, exportPrefix))
	}
	return nil
}

func (b *Bot) deleteCallback(ctx context.Context, query *tgbotapi.CallbackQuery, arg string) error {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	if arg == cancelArg {
		return b.editText(chatID, messageID, "annulé")
	}

	if err := b.missions.Delete(ctx, arg); err != nil {
		b.logger.Error("deleting mission", "date", arg, "error", err)
		return b.editText(chatID, messageID, "erreur lors de la suppression")
	}
	return b.editText(chatID, messageID, "mission supprimée")
}

func (b *Bot) exportCallback(ctx context.Context, query *tgbotapi.CallbackQuery, arg string) error {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	switch arg {
	case cancelArg:
		return b.editText(chatID, messageID, "annulé")
	case exportContinue:
		return b.runExport(ctx, chatID, messageID)
	}
	return nil
}

// runExport writes the workbook, uploads it, removes the temp file, then
// clears the exported records from the store. Cleanup failures are logged
// only: the file already left the process.
func (b *Bot) runExport(ctx context.Context, chatID int64, messageID int) error {
	exported, err := b.missions.Export(ctx, b.exportPath)
	if err != nil {
		b.logger.Error("building export", "error", err)
		return b.editText(chatID, messageID, "erreur lors de la création du fichier Excel")
	}

	if err := b.editText(chatID, messageID, "excel envoyé"); err != nil {
		return err
	}
	if _, err := b.api.Send(tgbotapi.NewDocument(chatID, tgbotapi.FilePath(b.exportPath))); err != nil {
		return err
	}
	if err := os.Remove(b.exportPath); err != nil {
		b.logger.Error("removing export file", "path", b.exportPath, "error", err)
	}

	if remaining := b.missions.CleanupExported(ctx, exported); remaining > 0 {
		b.logger.Error("export cleanup incomplete", "remaining", remaining)
	}
	return b.sendText(chatID, "base de donnée nettoyée")
}

func (b *Bot) sendText(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *Bot) editText(chatID int64, messageID int, text string) error {
	_, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

func (b *Bot) sendReply(chatID int64, reply flow.Reply) error {
	for i, text := range reply.Texts {
		msg := tgbotapi.NewMessage(chatID, text)
		if i == 0 {
			switch reply.Keyboard {
			case flow.KeyboardAgencies:
				msg.ReplyMarkup = agencyKeyboard()
			case flow.KeyboardRemove:
				msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
			}
		}
		if _, err := b.api.Send(msg); err != nil {
			return err
		}
	}
	return nil
}
