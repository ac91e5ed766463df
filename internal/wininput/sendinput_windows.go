//go:build windows

// Package wininput is the boundary between keyboard logic and the Windows input APIs.
package wininput

import (
	"fmt"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32                     = windows.NewLazySystemDLL("user32.dll")
	procGetMessageExtraInfo    = user32.NewProc("GetMessageExtraInfo")
	procVkKeyScanW             = user32.NewProc("VkKeyScanW")
	procGetKeyboardLayout      = user32.NewProc("GetKeyboardLayout")
	procLoadKeyboardLayoutW    = user32.NewProc("LoadKeyboardLayoutW")
	procActivateKeyboardLayout = user32.NewProc("ActivateKeyboardLayout")
	procGetKeyboardLayoutList  = user32.NewProc("GetKeyboardLayoutList")
)

// keyboardInput matches sizeof(INPUT); the union is sized by MOUSEINPUT, eight bytes
// larger than KEYBDINPUT on both 32 and 64 bit.
type keyboardInput struct {
	Type uint32
	Ki   win.KEYBDINPUT
	_    [8]byte
}

// WinPlatform calls user32 directly.
type WinPlatform struct{}

// NewPlatform returns the Windows platform binding.
func NewPlatform() (Platform, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("wininput: load user32: %w", err)
	}
	return &WinPlatform{}, nil
}

// SendKey dispatches a single keyboard input event.
func (w *WinPlatform) SendKey(ev KeyEvent) error {
	if err := ev.Flags.Validate(); err != nil {
		return err
	}
	input := keyboardInput{
		Type: win.INPUT_KEYBOARD,
		Ki: win.KEYBDINPUT{
			WVk:         ev.VK,
			DwFlags:     uint32(ev.Flags),
			DwExtraInfo: ev.ExtraInfo,
		},
	}
	if win.SendInput(1, unsafe.Pointer(&input), int32(unsafe.Sizeof(input))) != 1 {
		return fmt.Errorf("%w: vk %#x %s: %v", ErrInjectFailed, ev.VK, ev.Flags, windows.Errno(win.GetLastError()))
	}
	return nil
}

// MessageExtraInfo returns GetMessageExtraInfo for the calling thread.
func (w *WinPlatform) MessageExtraInfo() uintptr {
	ret, _, _ := procGetMessageExtraInfo.Call()
	return ret
}

// ScanChar calls VkKeyScanW. Characters outside the BMP have no mapping.
func (w *WinPlatform) ScanChar(r rune) int16 {
	if r < 0 || r > 0xFFFF {
		return -1
	}
	ret, _, _ := procVkKeyScanW.Call(uintptr(uint16(r)))
	return int16(ret)
}

// KeyToggled reports the low-order toggle bit of GetKeyState.
func (w *WinPlatform) KeyToggled(vk uint16) bool {
	return win.GetKeyState(int32(vk))&0x0001 != 0
}

// KeyboardLayout wraps GetKeyboardLayout.
func (w *WinPlatform) KeyboardLayout(threadID uint32) Layout {
	ret, _, _ := procGetKeyboardLayout.Call(uintptr(threadID))
	return Layout(ret)
}

// LoadKeyboardLayout wraps LoadKeyboardLayoutW. A zero handle is returned with a nil error
// when the OS reports no matching locale without setting a last error.
func (w *WinPlatform) LoadKeyboardLayout(klid string, flags uint32) (Layout, error) {
	name, err := windows.UTF16PtrFromString(klid)
	if err != nil {
		return 0, err
	}
	ret, _, callErr := procLoadKeyboardLayoutW.Call(uintptr(unsafe.Pointer(name)), uintptr(flags))
	if ret == 0 && callErr != windows.ERROR_SUCCESS {
		return 0, fmt.Errorf("wininput: LoadKeyboardLayoutW(%s): %w", klid, callErr)
	}
	return Layout(ret), nil
}

// ActivateKeyboardLayout wraps ActivateKeyboardLayout.
func (w *WinPlatform) ActivateKeyboardLayout(layout Layout, flags uint32) (Layout, error) {
	ret, _, callErr := procActivateKeyboardLayout.Call(uintptr(layout), uintptr(flags))
	if ret == 0 && callErr != windows.ERROR_SUCCESS {
		return 0, fmt.Errorf("wininput: ActivateKeyboardLayout(%s): %w", layout, callErr)
	}
	return Layout(ret), nil
}

// KeyboardLayoutList wraps GetKeyboardLayoutList.
func (w *WinPlatform) KeyboardLayoutList(buf []Layout) (int, error) {
	if len(buf) == 0 {
		ret, _, _ := procGetKeyboardLayoutList.Call(0, 0)
		return int(ret), nil
	}
	ret, _, callErr := procGetKeyboardLayoutList.Call(uintptr(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	if ret == 0 && callErr != windows.ERROR_SUCCESS {
		return 0, fmt.Errorf("wininput: GetKeyboardLayoutList: %w", callErr)
	}
	return int(ret), nil
}
