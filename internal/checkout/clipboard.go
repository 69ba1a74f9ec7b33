package checkout

import (
	"errors"

	"github.com/atotto/clipboard"
)

// SystemClipboard writes to the OS clipboard (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

var errClipboardUnsupported = errors.New("clipboard unsupported on this system")

type unavailableClipboard struct{}

func (unavailableClipboard) WriteAll(string) error { return errClipboardUnsupported }
