//go:build darwin && cgo

package tis

/*
#cgo LDFLAGS: -framework Carbon -framework CoreFoundation

#include <Carbon/Carbon.h>
#include <stdlib.h>
#include <string.h>

// Snapshot of every installed source, taken once by ism_initialize.
static CFArrayRef ism_sources = NULL;

static void ism_initialize(void) {
    if (ism_sources != NULL) {
        return;
    }
    ism_sources = TISCreateInputSourceList(NULL, false);
}

// Returns a malloc'd UTF-8 copy of s, or NULL. Release with free.
static char *ism_copy_string(CFStringRef s) {
    if (s == NULL) {
        return NULL;
    }

    CFIndex max = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
    char *buf = malloc(max);
    if (buf == NULL) {
        return NULL;
    }
    if (!CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
        free(buf);
        return NULL;
    }
    return buf;
}

static CFStringRef ism_source_id(TISInputSourceRef src) {
    return (CFStringRef)TISGetInputSourceProperty(src, kTISPropertyInputSourceID);
}

static int ism_is_selectable(TISInputSourceRef src) {
    CFBooleanRef capable = (CFBooleanRef)TISGetInputSourceProperty(src, kTISPropertyInputSourceIsSelectCapable);
    return capable != NULL && CFBooleanGetValue(capable);
}

// category: 0 keyboard, 1 palette, 2 all
static int ism_in_category(TISInputSourceRef src, int category) {
    CFStringRef cat = (CFStringRef)TISGetInputSourceProperty(src, kTISPropertyInputSourceCategory);
    if (cat == NULL) {
        return 0;
    }

    int keyboard = CFEqual(cat, kTISCategoryKeyboardInputSource);
    int palette = CFEqual(cat, kTISCategoryPaletteInputSource);
    switch (category) {
    case 0:
        return keyboard;
    case 1:
        return palette;
    default:
        return keyboard || palette;
    }
}

static char *ism_current_id(void) {
    TISInputSourceRef current = TISCopyCurrentKeyboardInputSource();
    if (current == NULL) {
        return NULL;
    }
    char *out = ism_copy_string(ism_source_id(current));
    CFRelease(current);
    return out;
}

static TISInputSourceRef ism_find(CFStringRef id) {
    if (ism_sources == NULL) {
        return NULL;
    }

    for (CFIndex i = 0; i < CFArrayGetCount(ism_sources); i++) {
        TISInputSourceRef src = (TISInputSourceRef)CFArrayGetValueAtIndex(ism_sources, i);
        if (!ism_is_selectable(src) || !ism_in_category(src, 2)) {
            continue;
        }
        CFStringRef sid = ism_source_id(src);
        if (sid != NULL && CFEqual(sid, id)) {
            return src;
        }
    }
    return NULL;
}

// 0 ok, -1 no such source, -2 the switch did not take, other values are
// the OSStatus of TISSelectInputSource.
static int ism_select(const char *target) {
    CFStringRef id = CFStringCreateWithCString(NULL, target, kCFStringEncodingUTF8);
    if (id == NULL) {
        return -1;
    }

    TISInputSourceRef src = ism_find(id);
    if (src == NULL) {
        CFRelease(id);
        return -1;
    }

    OSStatus status = TISSelectInputSource(src);
    if (status != noErr) {
        CFRelease(id);
        return (int)status;
    }

    // palette sources never become the current keyboard source
    int rc = 0;
    if (ism_in_category(src, 0)) {
        TISInputSourceRef current = TISCopyCurrentKeyboardInputSource();
        if (current == NULL || !CFEqual(ism_source_id(current), id)) {
            rc = -2;
        }
        if (current != NULL) {
            CFRelease(current);
        }
    }

    CFRelease(id);
    return rc;
}

static char *ism_list_ids(int category) {
    if (ism_sources == NULL) {
        return NULL;
    }

    CFMutableStringRef joined = CFStringCreateMutable(NULL, 0);
    if (joined == NULL) {
        return NULL;
    }

    int first = 1;
    for (CFIndex i = 0; i < CFArrayGetCount(ism_sources); i++) {
        TISInputSourceRef src = (TISInputSourceRef)CFArrayGetValueAtIndex(ism_sources, i);
        if (!ism_is_selectable(src) || !ism_in_category(src, category)) {
            continue;
        }
        CFStringRef sid = ism_source_id(src);
        if (sid == NULL) {
            continue;
        }
        if (!first) {
            CFStringAppend(joined, CFSTR(","));
        }
        CFStringAppend(joined, sid);
        first = 0;
    }

    char *out = ism_copy_string(joined);
    CFRelease(joined);
    return out;
}
*/
import "C"

import (
	"runtime"
	"unsafe"

	"codeberg.org/miketth/ism/pkg/inputsource"
)

// TIS wants the main thread.
func init() {
	runtime.LockOSThread()
}

// Native is the raw TIS service. Wrap it with inputsource.NewBridge.
type Native struct{}

func Open() (*Native, error) {
	return &Native{}, nil
}

func (Native) Initialize() {
	C.ism_initialize()
}

func (Native) CurrentID() unsafe.Pointer {
	return unsafe.Pointer(C.ism_current_id())
}

func (Native) SelectByID(id unsafe.Pointer) int32 {
	return int32(C.ism_select((*C.char)(id)))
}

func (Native) ListIDs(category inputsource.Category) unsafe.Pointer {
	return unsafe.Pointer(C.ism_list_ids(C.int(category)))
}

func (Native) Release(buf unsafe.Pointer) {
	C.free(buf)
}
