package upload

import (
	"github.com/rescp17/daemonSend/internal/util"
	"github.com/rescp17/daemonSend/pkg/fileInfo"
)

// Selector holds the file picked for the next upload, if any.
type Selector struct {
	file *fileInfo.File
}

// Choose adopts the first of files and ignores the rest. An empty list
// clears the selection.
func (s *Selector) Choose(files []fileInfo.File) {
	if len(files) == 0 {
		s.file = nil
		return
	}
	f := files[0]
	s.file = &f
}

// Selected returns the picked file or nil.
func (s *Selector) Selected() *fileInfo.File {
	return s.file
}

func (s *Selector) Clear() {
	s.file = nil
}

// Label is the human readable size of the picked file, or "" when none is picked.
func (s *Selector) Label() string {
	if s.file == nil {
		return ""
	}
	return util.FormatSize(s.file.Size)
}
