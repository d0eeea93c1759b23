package flow

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/spystrach/interimBot/internal/domain"
	"github.com/spystrach/interimBot/internal/repository"
	"github.com/spystrach/interimBot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChat int64 = 42

func engineSetup(t *testing.T) (*Engine, repository.MissionRepo) {
	t.Helper()
	repo := repository.NewSQLiteMissionRepo(testutil.NewTestDB(t))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(repo, logger), repo
}

// walk feeds messages through the engine, asserting each one is consumed.
func walk(t *testing.T, e *Engine, msgs ...string) Reply {
	t.Helper()
	var last Reply
	for _, msg := range msgs {
		reply, consumed := e.HandleMessage(context.Background(), testChat, msg)
		require.True(t, consumed, "message %q should be consumed by the active flow", msg)
		last = reply
	}
	return last
}

func TestEngine_FullEntry(t *testing.T) {
	e, repo := engineSetup(t)

	reply := e.Start(testChat)
	require.Len(t, reply.Texts, 1)
	assert.Contains(t, reply.Texts[0], "Avec quelle agence")
	assert.Equal(t, KeyboardAgencies, reply.Keyboard)
	assert.True(t, e.Active(testChat))

	last := walk(t, e, "adecco", "05 03 2024", "clinique pasteur", "8 0", "16 30")
	require.Len(t, last.Texts, 2)
	assert.Contains(t, last.Texts[0], "récapitulatif")
	assert.Contains(t, last.Texts[0], "mar. 5 mars")
	assert.Contains(t, last.Texts[1], "bien enregistré")
	assert.False(t, e.Active(testChat))

	m, err := repo.Get(context.Background(), "2024/03/05")
	require.NoError(t, err)
	assert.Equal(t, domain.AgencyAdecco, m.Agency)
	assert.Equal(t, "clinique pasteur", m.Location)
	assert.Equal(t, "08:00", m.StartTime)
	assert.Equal(t, "16:30", m.EndTime)
}

func TestEngine_InvalidInputDoesNotAdvance(t *testing.T) {
	e, _ := engineSetup(t)
	ctx := context.Background()

	e.Start(testChat)

	// Unrecognized agency: consumed, silent, still on the same step.
	reply, consumed := e.HandleMessage(ctx, testChat, "manpower")
	assert.True(t, consumed)
	assert.Empty(t, reply.Texts)

	reply, _ = e.HandleMessage(ctx, testChat, "adecco")
	require.Len(t, reply.Texts, 1)
	assert.Contains(t, reply.Texts[0], "la date")

	// Malformed date: silent retry.
	reply, _ = e.HandleMessage(ctx, testChat, "2024-03-05")
	assert.Empty(t, reply.Texts)

	// Non-padded day and month pass the gate.
	reply, _ = e.HandleMessage(ctx, testChat, "5 3 2024")
	require.Len(t, reply.Texts, 1)
	assert.Contains(t, reply.Texts[0], "le lieu")
}

func TestEngine_LocationRejectsCommands(t *testing.T) {
	e, _ := engineSetup(t)

	e.Start(testChat)
	walk(t, e, "adecco", "05 03 2024")

	reply, consumed := e.HandleMessage(context.Background(), testChat, "/help")
	assert.True(t, consumed)
	assert.Empty(t, reply.Texts)
}

func TestEngine_CancelMidFlow(t *testing.T) {
	e, repo := engineSetup(t)

	e.Start(testChat)
	walk(t, e, "adecco", "05 03 2024")

	reply, ok := e.Cancel(testChat)
	require.True(t, ok)
	require.Len(t, reply.Texts, 1)
	assert.Contains(t, reply.Texts[0], "annulation")
	assert.Equal(t, KeyboardRemove, reply.Keyboard)
	assert.False(t, e.Active(testChat))

	// Draft discarded, store untouched.
	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	// Follow-up messages are no longer consumed.
	_, consumed := e.HandleMessage(context.Background(), testChat, "clinique pasteur")
	assert.False(t, consumed)
}

func TestEngine_CancelWithoutDraft(t *testing.T) {
	e, _ := engineSetup(t)

	_, ok := e.Cancel(testChat)
	assert.False(t, ok)
}

func TestEngine_DuplicateDateSwallowed(t *testing.T) {
	e, repo := engineSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestMission("2024/03/05")))

	e.Start(testChat)
	last := walk(t, e, "appel medical", "05 03 2024", "hopital purpan", "9 5", "17 0")

	// Recap shown, but no confirmation: the duplicate is logged only.
	require.Len(t, last.Texts, 1)
	assert.Contains(t, last.Texts[0], "récapitulatif")
	assert.False(t, e.Active(testChat))

	// Original record untouched.
	m, err := repo.Get(ctx, "2024/03/05")
	require.NoError(t, err)
	assert.Equal(t, domain.AgencyAdecco, m.Agency)
}

func TestEngine_IndependentChats(t *testing.T) {
	e, _ := engineSetup(t)
	ctx := context.Background()

	e.Start(1)
	e.Start(2)

	walkChat := func(chatID int64, msg string) (Reply, bool) {
		return e.HandleMessage(ctx, chatID, msg)
	}

	reply, consumed := walkChat(1, "adecco")
	require.True(t, consumed)
	assert.NotEmpty(t, reply.Texts)

	// Chat 2 is still on the agency step.
	reply, consumed = walkChat(2, "05 03 2024")
	assert.True(t, consumed)
	assert.Empty(t, reply.Texts)

	// Cancelling chat 1 leaves chat 2 active.
	_, ok := e.Cancel(1)
	require.True(t, ok)
	assert.False(t, e.Active(1))
	assert.True(t, e.Active(2))
}

func TestEngine_RestartDiscardsPreviousDraft(t *testing.T) {
	e, repo := engineSetup(t)

	e.Start(testChat)
	walk(t, e, "adecco", "05 03 2024")

	// Starting again resets to the agency question.
	reply := e.Start(testChat)
	assert.Contains(t, reply.Texts[0], "Avec quelle agence")

	last := walk(t, e, "appel medical", "06 03 2024", "hopital purpan", "9 0", "17 0")
	assert.Contains(t, last.Texts[len(last.Texts)-1], "bien enregistré")

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "2024/03/06", all[0].Date)
}
