package desensitize

import "io"

// Writer masks each entry before passing it on
type Writer struct {
	out  io.Writer
	hook *Hook
}

func NewWriter(out io.Writer, hook *Hook) *Writer {
	return &Writer{out: out, hook: hook}
}

// Write reports len(p) on success even when masking changed the length;
// zerolog treats a short write as an error.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 || w.hook == nil {
		return w.out.Write(p)
	}

	entry := string(p)
	masked := w.hook.Mask(entry)
	if masked == entry {
		return w.out.Write(p)
	}
	if _, err := io.WriteString(w.out, masked); err != nil {
		return 0, err
	}
	return len(p), nil
}
