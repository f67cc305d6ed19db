package roster

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"roster-lookup-go/models"
)

func TestNewSession_Idle(t *testing.T) {
	s := NewSession("abc")
	assert.Equal(t, "abc", s.ID)
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Records())
	assert.Empty(t, s.ClassIndex())
}

func TestRestore_RecomputesClassIndex(t *testing.T) {
	st := State{
		Records:   []models.StudentRecord{{Class: "2B"}, {Class: "1A"}, {Class: "2B"}},
		Selection: models.Selection{Day: "Mon"},
		Display:   models.Display{Rendered: true},
		Visible:   true,
	}

	s := Restore("abc", st)
	assert.Equal(t, []string{"1A", "2B"}, s.ClassIndex())
	assert.Equal(t, st, s.Snapshot())
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := Restore("abc", State{Records: []models.StudentRecord{{Name: "A"}}, Visible: true})

	st := s.Snapshot()
	st.Records[0].Name = "changed"
	assert.Equal(t, "A", s.Records()[0].Name)
}

func TestSession_ConcurrentEvents(t *testing.T) {
	s := NewSession("abc")
	s.replace(sampleRoster)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.selectDay("Mon")
		}()
		go func() {
			defer wg.Done()
			s.reset()
		}()
	}
	wg.Wait()
	assert.Equal(t, sampleRoster, s.Records())
}
