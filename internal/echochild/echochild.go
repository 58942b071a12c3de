// Package echochild implements the reference subordinate: a line-oriented
// responder that reads requests on its input and answers on its output.
//
//	HOLA   -> HOLA PADRE
//	PING   -> PONG
//	SALIR  -> ADIOS, then stop
//	<text> -> ECO: <text>
//
// Every reply ends with a newline and is flushed immediately.
package echochild

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
)

// Reply returns the response to one request line (without its newline) and
// whether the conversation is over.
func Reply(line string) (string, bool) {
	switch line {
	case "HOLA":
		return "HOLA PADRE\n", false
	case "PING":
		return "PONG\n", false
	case "SALIR":
		return "ADIOS\n", true
	default:
		return "ECO: " + line + "\n", false
	}
}

// Serve answers requests from r on w until r reaches EOF or SALIR is
// received.
func Serve(log *slog.Logger, r io.Reader, w io.Writer) error {
	log.Debug("Waiting for messages")

	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		line := scanner.Text()
		log.Debug("Message received", "message", line, "len", len(line))

		reply, last := Reply(line)

		if _, err := out.WriteString(reply); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}

		if err := out.Flush(); err != nil {
			return fmt.Errorf("flush reply: %w", err)
		}

		log.Debug("Reply sent", "reply", reply)

		if last {
			log.Debug("Exit requested")

			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read requests: %w", err)
	}

	log.Debug("End of input")

	return nil
}
