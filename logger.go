/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// Logger keeps the most recent lines written to it so a front end can show
// them. It is installed as the output of the standard logger.
type Logger struct {
	mu sync.Mutex

	// buf contains each line of logged text, oldest first.
	buf []string

	// limit is the number of lines retained.
	limit int

	// partial is text written without a trailing newline yet.
	partial []byte

	// tee receives everything written as well, if set.
	tee io.Writer
}

// NewLog creates a new Logger retaining up to limit lines.
func NewLog(limit int) *Logger {
	return &Logger{
		buf:   make([]string, 0, limit),
		limit: limit,
	}
}

// Tee also copies everything written to w.
func (log *Logger) Tee(w io.Writer) {
	log.mu.Lock()
	log.tee = w
	log.mu.Unlock()
}

// Write appends complete lines of p to the log.
func (log *Logger) Write(p []byte) (int, error) {
	log.mu.Lock()
	defer log.mu.Unlock()

	if log.tee != nil {
		if _, err := log.tee.Write(p); err != nil {
			return 0, err
		}
	}

	log.partial = append(log.partial, p...)

	for {
		i := bytes.IndexByte(log.partial, '\n')
		if i < 0 {
			break
		}

		log.append(strings.TrimRight(string(log.partial[:i]), "\r"))
		log.partial = log.partial[i+1:]
	}

	return len(p), nil
}

// append a line, dropping the oldest once full.
func (log *Logger) append(s string) {
	if len(log.buf) == log.limit {
		copy(log.buf, log.buf[1:])
		log.buf = log.buf[:len(log.buf)-1]
	}

	log.buf = append(log.buf, s)
}

// Window returns the last n lines logged.
func (log *Logger) Window(n int) []string {
	log.mu.Lock()
	defer log.mu.Unlock()

	start := len(log.buf) - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	return append([]string(nil), log.buf[start:]...)
}

// Lines returns every retained line.
func (log *Logger) Lines() []string {
	return log.Window(log.limit)
}

// WriteTo replays the retained lines to w.
func (log *Logger) WriteTo(w io.Writer) (int64, error) {
	var n int64

	for _, line := range log.Lines() {
		m, err := io.WriteString(w, line+"\n")
		n += int64(m)

		if err != nil {
			return n, err
		}
	}

	return n, nil
}
