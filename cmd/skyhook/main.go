package main

import (
	"fmt"
	"os"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/style"

	// Import providers to ensure their init() functions are called for registration
	_ "github.com/avasek/skyhook/pkg/mount/smb"
	_ "github.com/avasek/skyhook/pkg/mount/webdav"
)

func main() {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	// A declined run and state that already matched are clean exits.
	if errors.ExitCode(err) == 0 {
		fmt.Fprintln(os.Stderr, err.Error())
		return
	}

	fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
	os.Exit(1)
}
