package upload

import (
	"testing"

	"github.com/rescp17/daemonSend/pkg/fileInfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorChooseAdoptsFirstFile(t *testing.T) {
	var s Selector
	s.Choose([]fileInfo.File{
		{Name: "first.txt", Size: 2048},
		{Name: "second.txt", Size: 10},
	})

	require.NotNil(t, s.Selected())
	assert.Equal(t, "first.txt", s.Selected().Name)
	assert.Equal(t, "2.0 KB", s.Label())
}

func TestSelectorEmptyChoiceClears(t *testing.T) {
	var s Selector
	s.Choose([]fileInfo.File{{Name: "a.txt", Size: 1}})
	require.NotNil(t, s.Selected())

	s.Choose(nil)
	assert.Nil(t, s.Selected())
	assert.Empty(t, s.Label())
}

func TestSelectorLabelFollowsLatestPick(t *testing.T) {
	var s Selector
	s.Choose([]fileInfo.File{{Name: "small.txt", Size: 1023}})
	assert.Equal(t, "1023 bytes", s.Label())

	s.Choose([]fileInfo.File{{Name: "big.iso", Size: 1048576}})
	assert.Equal(t, "big.iso", s.Selected().Name)
	assert.Equal(t, "1.0 MB", s.Label())

	s.Clear()
	assert.Empty(t, s.Label())
}

func TestSelectorChooseDoesNotAliasCallerSlice(t *testing.T) {
	var s Selector
	files := []fileInfo.File{{Name: "a.txt", Size: 1}}
	s.Choose(files)
	files[0].Name = "changed.txt"

	assert.Equal(t, "a.txt", s.Selected().Name)
}
