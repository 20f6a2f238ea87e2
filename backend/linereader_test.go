package backend

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"testing"
)

func expectToRead(t *testing.T, reader io.Reader, expected []byte) {
	t.Helper()
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if err != nil {
		t.Errorf("expected read to succeed, got: %v", err)
	} else if !bytes.Equal(scratch[:n], expected) {
		t.Errorf("expected read to yield %q, got: %q", expected, scratch[:n])
	}
}

func expectReadEOF(t *testing.T, reader io.Reader) {
	t.Helper()
	var scratch [1024]byte
	n, err := reader.Read(scratch[:])
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected read to give EOF, got: %v", err)
	} else if n != 0 {
		t.Errorf("expected read to read nothing, read %q", scratch[:n])
	}
}

func TestLineReader(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	buf.WriteString("0, 12.5\n")
	buf.WriteString("0.1, 13\n")
	l := newLineReader(buf)
	expectToRead(t, l, []byte("0, 12.5\n"))
	expectToRead(t, l, []byte("0.1, 13\n"))
	buf.WriteString("0.2, 1")
	expectReadEOF(t, l)
	buf.WriteString("4\n")
	expectToRead(t, l, []byte("0.2, 14\n"))
	buf.WriteString("0.3")
	expectReadEOF(t, l)
	buf.WriteString(",")
	expectReadEOF(t, l)
	buf.WriteString(" 15\n0.4")
	expectToRead(t, l, []byte("0.3, 15\n"))
}

func TestLineReaderShortBuffer(t *testing.T) {
	l := newLineReader(bytes.NewBufferString("0.25, 42\n"))
	var scratch [4]byte
	var got []byte
	for {
		n, err := l.Read(scratch[:])
		got = append(got, scratch[:n]...)
		if err != nil {
			break
		}
	}
	if string(got) != "0.25, 42\n" {
		t.Errorf("expected the whole line across short reads, got %q", got)
	}
}

func TestLineReaderHoldsBackPartialRows(t *testing.T) {
	buf := bytes.NewBufferString("1, 2\n3, ")
	r := csv.NewReader(newLineReader(buf))
	r.TrimLeadingSpace = true
	rec, err := r.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec[0] != "1" || rec[1] != "2" {
		t.Errorf("expected first row, got %q", rec)
	}
	if _, err := r.Read(); !errors.Is(err, io.EOF) {
		t.Errorf("expected the partial row to be held back, got %v", err)
	}
}
