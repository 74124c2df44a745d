package inbox

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInbox() *Inbox {
	in := New()
	clock := time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC)
	in.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return in
}

func TestClassify(t *testing.T) {
	tests := []struct {
		question string
		want     Kind
	}{
		{"Vorrei una consulenza sul mio prodotto", KindLead},
		{"Possiamo collaborare a un progetto?", KindLead},
		{"Ti va un caffè per conoscerci?", KindNetworking},
		{"Vieni al meetup di Milano?", KindNetworking},
		{"Che tastiera usi?", KindCurious},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.question), tt.question)
	}
}

func TestSubmit(t *testing.T) {
	in := newTestInbox()

	msg, err := in.Submit(Submission{Name: "  Giulia ", Email: "Giulia <giulia@example.com>", Question: " Vorrei una consulenza "})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Giulia", msg.Name)
	assert.Equal(t, "giulia@example.com", msg.Email)
	assert.Equal(t, "Vorrei una consulenza", msg.Question)
	assert.Equal(t, KindLead, msg.Kind)
	assert.False(t, msg.Anonymous())
}

func TestSubmit_Anonymous(t *testing.T) {
	msg, err := newTestInbox().Submit(Submission{Question: "Che libri consigli?"})
	require.NoError(t, err)
	assert.True(t, msg.Anonymous())
	assert.Empty(t, msg.Email)
}

func TestSubmit_Validation(t *testing.T) {
	in := newTestInbox()

	_, err := in.Submit(Submission{Question: "   "})
	assert.True(t, errors.Is(err, ErrQuestionRequired))

	_, err = in.Submit(Submission{Email: "not-an-email", Question: "ciao"})
	assert.True(t, errors.Is(err, ErrInvalidEmail))

	assert.Equal(t, 0, in.Counts()[KindAll])
}

func TestList_FilterAndOrder(t *testing.T) {
	in := newTestInbox()
	lead, _ := in.Submit(Submission{Name: "Luca", Question: "Preventivo per un progetto"})
	coffee, _ := in.Submit(Submission{Name: "Sara", Email: "sara@example.com", Question: "Un caffè?"})
	curious, _ := in.Submit(Submission{Question: "Che tool usi per le roadmap?"})

	all := in.List(KindAll, "")
	require.Len(t, all, 3)
	assert.Equal(t, []string{curious.ID, coffee.ID, lead.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	leads := in.List(KindLead, "")
	require.Len(t, leads, 1)
	assert.Equal(t, lead.ID, leads[0].ID)

	byEmail := in.List("", "SARA@")
	require.Len(t, byEmail, 1)
	assert.Equal(t, coffee.ID, byEmail[0].ID)

	assert.Empty(t, in.List(KindNetworking, "roadmap"))
}

func TestToggleStarAndCounts(t *testing.T) {
	in := newTestInbox()
	msg, _ := in.Submit(Submission{Question: "Consulenza?"})

	starred, err := in.ToggleStar(msg.ID)
	require.NoError(t, err)
	assert.True(t, starred.Starred)

	unstarred, err := in.ToggleStar(msg.ID)
	require.NoError(t, err)
	assert.False(t, unstarred.Starred)

	_, err = in.ToggleStar("missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	counts := in.Counts()
	assert.Equal(t, 1, counts[KindAll])
	assert.Equal(t, 1, counts[KindLead])
	assert.Equal(t, 0, counts[KindNetworking])
}
