package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rescp17/daemonSend/pkg/fileInfo"
	"github.com/rescp17/daemonSend/pkg/upload"
)

// runPush sends one file through the same controller the form uses.
// A failed submission is returned as an error carrying the status text.
func runPush(ctx context.Context, uploader upload.Uploader, path, recipient string, out io.Writer) error {
	file, err := fileInfo.CreateFile(path)
	if err != nil {
		return fmt.Errorf("cannot send %s: %w", path, err)
	}

	c := upload.NewController(uploader)
	c.Selector().Choose([]fileInfo.File{file})
	c.SetRecipient(recipient)

	if attempt, err := c.Submit(); err == nil {
		fmt.Fprintf(out, "Sending %s (%s) to %s...\n", file.Name, c.Selector().Label(), recipient)
		c.Complete(attempt.Run(ctx))
	}

	if failed, ok := c.Result().(upload.Failed); ok {
		return errors.New(failed.Message)
	}
	fmt.Fprintln(out, c.Result().Text())
	return nil
}
