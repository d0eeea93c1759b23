package mail

import (
	"strings"
	"testing"

	"github.com/spystrach/interimBot/internal/domain"
	"github.com/spystrach/interimBot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryBody_PartitionsByAgency(t *testing.T) {
	missions := []*domain.Mission{
		testutil.NewTestMission("2024/03/05"), // adecco
		testutil.NewTestMission("2024/03/06",
			testutil.WithAgency(domain.AgencyAppelMedical),
			testutil.WithLocation("hopital purpan"),
		),
	}

	body, err := SummaryBody(missions)
	require.NoError(t, err)

	adeccoBlock, medicalBlock := splitBlocks(t, body)

	// The appel medical block comes first.
	assert.Less(t, strings.Index(body, "Missions avec appel medical"),
		strings.Index(body, "Missions avec adecco"))

	assert.Contains(t, adeccoBlock, "mar. 5 mars à clinique pasteur")
	assert.NotContains(t, adeccoBlock, "hopital purpan")

	assert.Contains(t, medicalBlock, "mer. 6 mars à hopital purpan")
	assert.NotContains(t, medicalBlock, "clinique pasteur")
}

func TestSummaryBody_EmptyStoreStillHasBothBlocks(t *testing.T) {
	body, err := SummaryBody(nil)
	require.NoError(t, err)
	assert.Contains(t, body, "Missions avec adecco :")
	assert.Contains(t, body, "Missions avec appel medical :")
}

func TestSummaryBody_Footer(t *testing.T) {
	body, err := SummaryBody(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(body, "by mgl corp."))
}

// splitBlocks cuts the body at the block separators and returns the
// adecco and appel medical sections.
func splitBlocks(t *testing.T, body string) (adecco, medical string) {
	t.Helper()
	parts := strings.Split(body, "-------------------------")
	require.Len(t, parts, 3, "two agency blocks plus the footer")
	for _, p := range parts[:2] {
		switch {
		case strings.Contains(p, "Missions avec adecco"):
			adecco = p
		case strings.Contains(p, "Missions avec appel medical"):
			medical = p
		}
	}
	require.NotEmpty(t, adecco)
	require.NotEmpty(t, medical)
	return adecco, medical
}
