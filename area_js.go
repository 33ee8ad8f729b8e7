//go:build js && wasm

package nativestorage

import (
	"encoding/json"
	"fmt"
	"syscall/js"
)

var (
	_ SyncArea  = (*ChromeSyncArea)(nil)
	_ LocalArea = (*WindowLocalArea)(nil)
)

// ChromeSyncArea is the chrome.storage.sync area of the running extension.
type ChromeSyncArea struct {
	chrome js.Value
	area   js.Value
}

// Get calls chrome.storage.sync.get for a single key.
func (a *ChromeSyncArea) Get(key string, callback func(items map[string]any, err error)) {
	var fn js.Func

	fn = js.FuncOf(func(_ js.Value, args []js.Value) any {
		defer fn.Release()

		if err := a.lastError(); err != nil {
			callback(nil, err)

			return nil
		}

		items := make(map[string]any, 1)

		if len(args) > 0 {
			if v := args[0].Get(key); !v.IsUndefined() && !v.IsNull() {
				decoded, err := fromJS(v)
				if err != nil {
					callback(nil, err)

					return nil
				}

				items[key] = decoded
			}
		}

		callback(items, nil)

		return nil
	})

	a.area.Call("get", key, fn)
}

// Set calls chrome.storage.sync.set with the given items.
func (a *ChromeSyncArea) Set(items map[string]any, callback func(err error)) {
	obj, err := toJS(items)
	if err != nil {
		go callback(err)

		return
	}

	var fn js.Func

	fn = js.FuncOf(func(_ js.Value, _ []js.Value) any {
		defer fn.Release()

		callback(a.lastError())

		return nil
	})

	a.area.Call("set", obj, fn)
}

func (a *ChromeSyncArea) lastError() error {
	le := a.chrome.Get("runtime").Get("lastError")
	if le.IsUndefined() || le.IsNull() {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrBackendUnavailable, le.Get("message").String())
}

// NewChromeSyncArea looks up chrome.storage.sync in the global scope.
func NewChromeSyncArea() (*ChromeSyncArea, error) {
	chrome := js.Global().Get("chrome")
	if chrome.IsUndefined() || chrome.Get("storage").IsUndefined() {
		return nil, fmt.Errorf("%w: chrome.storage is not available", ErrBackendUnavailable)
	}

	return &ChromeSyncArea{
		chrome: chrome,
		area:   chrome.Get("storage").Get("sync"),
	}, nil
}

// WindowLocalArea is the window.localStorage of the running page.
type WindowLocalArea struct {
	storage js.Value
}

// GetItem calls localStorage.getItem.
func (a *WindowLocalArea) GetItem(key string) (_ string, _ bool, err error) {
	defer recoverJSError(&err)

	v := a.storage.Call("getItem", key)
	if v.IsNull() {
		return "", false, nil
	}

	return v.String(), true, nil
}

// SetItem calls localStorage.setItem.
func (a *WindowLocalArea) SetItem(key string, value string) (err error) {
	defer recoverJSError(&err)

	a.storage.Call("setItem", key, value)

	return nil
}

// NewWindowLocalArea looks up localStorage in the global scope.
func NewWindowLocalArea() (*WindowLocalArea, error) {
	storage := js.Global().Get("localStorage")
	if storage.IsUndefined() || storage.IsNull() {
		return nil, fmt.Errorf("%w: localStorage is not available", ErrBackendUnavailable)
	}

	return &WindowLocalArea{storage: storage}, nil
}

func recoverJSError(err *error) {
	r := recover()
	if r == nil {
		return
	}

	jsErr, ok := r.(js.Error)
	if !ok {
		panic(r)
	}

	if jsErr.Get("name").String() == "QuotaExceededError" {
		*err = fmt.Errorf("%w: %s", ErrQuotaExceeded, jsErr.Error())

		return
	}

	*err = fmt.Errorf("%w: %s", ErrBackendUnavailable, jsErr.Error())
}

func toJS(items map[string]any) (js.Value, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return js.Undefined(), fmt.Errorf("failed to encode items: %w", err)
	}

	return js.Global().Get("JSON").Call("parse", string(b)), nil
}

func fromJS(v js.Value) (any, error) {
	s := js.Global().Get("JSON").Call("stringify", v).String()

	var out any

	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}

	return out, nil
}
