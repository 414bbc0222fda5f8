package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nf/c8/chip8"
)

// loadProgram reads at most chip8.MaxProgramSize bytes from the named file.
func loadProgram(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, chip8.MaxProgramSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading program: %v", err)
	}
	return buf[:n], nil
}
