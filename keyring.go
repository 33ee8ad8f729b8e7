package nativestorage

import (
	"errors"
	"fmt"
	"mime"
	"strconv"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
	"go.uber.org/multierr"
)

const (
	mimeMultipartItem = "application/multipart-item"
	minPages          = 2
	maxPageLength     = 2048
)

var (
	_ LocalArea           = (*KeyringArea)(nil)
	_ configurableKeyring = (*KeyringArea)(nil)
)

// KeyringArea is a LocalArea that keeps its items in the OS keyring under a single service.
//
// Items longer than the keyring limit are split into pages sharing the item key as prefix.
type KeyringArea struct {
	service string
	keyring keyring.Keyring
	mu      sync.Map
}

func (a *KeyringArea) mutex(key string) *sync.RWMutex {
	m, _ := a.mu.LoadOrStore(key, &sync.RWMutex{})

	return m.(*sync.RWMutex) //nolint: errcheck,forcetypeassert
}

func (a *KeyringArea) withKeyring(k keyring.Keyring) {
	a.keyring = k
}

func (a *KeyringArea) pages(d string) (int, bool, error) {
	if !strings.HasPrefix(d, mimeMultipartItem) {
		return 0, false, nil
	}

	_, params, err := mime.ParseMediaType(d)
	if err != nil {
		return 0, true, fmt.Errorf("failed to get params from item: %w", err)
	}

	pages, err := strconv.Atoi(params["pages"])
	if err != nil {
		return 0, true, fmt.Errorf("failed to get pages from item: %w", err)
	}

	return pages, true, nil
}

func (a *KeyringArea) get(key string) (string, bool, error) {
	d, err := a.keyring.Get(a.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to read item from keyring: %w", err)
	}

	pages, multipart, err := a.pages(d)
	if err != nil {
		return "", false, err
	}

	if !multipart {
		return d, true, nil
	}

	if pages < minPages {
		return "", false, fmt.Errorf("invalid item pages: %d", pages) //nolint: err113
	}

	var sb strings.Builder

	for i := 1; i <= pages; i++ {
		p, err := a.keyring.Get(a.service, formatPage(key, i))
		if err != nil {
			return "", false, fmt.Errorf("failed to read page #%d from keyring: %w", i, err)
		}

		sb.WriteString(p)
	}

	return sb.String(), true, nil
}

func (a *KeyringArea) setPages(key string, value string) (err error) {
	length := len(value)

	pages := length / maxPageLength
	if length%maxPageLength != 0 {
		pages++
	}

	written := 0

	defer func() {
		if err == nil {
			return
		}

		for i := 1; i <= written; i++ {
			_ = a.keyring.Delete(a.service, formatPage(key, i)) //nolint: errcheck
		}
	}()

	for page := 1; page <= pages; page++ {
		start := (page - 1) * maxPageLength
		end := min(page*maxPageLength, length)

		if err = a.keyring.Set(a.service, formatPage(key, page), value[start:end]); err != nil {
			return fmt.Errorf("failed to write page #%d to keyring: %w", page, err)
		}

		written = page
	}

	header := mime.FormatMediaType(mimeMultipartItem, map[string]string{"pages": strconv.Itoa(pages)})

	if err = a.keyring.Set(a.service, key, header); err != nil {
		return fmt.Errorf("failed to write item to keyring: %w", err)
	}

	return nil
}

// remove deletes the item and all of its pages. A missing item is not an error.
func (a *KeyringArea) remove(key string) error {
	d, err := a.keyring.Get(a.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read item from keyring for deletion: %w", err)
	}

	pages, _, err := a.pages(d)
	if err != nil {
		return err
	}

	for i := 1; i <= pages; i++ {
		if pErr := a.keyring.Delete(a.service, formatPage(key, i)); pErr != nil && !errors.Is(pErr, keyring.ErrNotFound) {
			err = multierr.Append(err, fmt.Errorf("failed to delete page #%d in keyring: %w", i, pErr))
		}
	}

	if dErr := a.keyring.Delete(a.service, key); dErr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to delete item in keyring: %w", dErr))
	}

	return err
}

// GetItem gets the item for the given key.
func (a *KeyringArea) GetItem(key string) (string, bool, error) {
	mu := a.mutex(key)

	mu.RLock()
	defer mu.RUnlock()

	return a.get(key)
}

// SetItem sets the item for the given key, replacing every page of the previous value.
func (a *KeyringArea) SetItem(key string, value string) error {
	mu := a.mutex(key)

	mu.Lock()
	defer mu.Unlock()

	if err := a.remove(key); err != nil {
		return fmt.Errorf("failed to delete old item in keyring: %w", err)
	}

	if len(value) > maxPageLength {
		return a.setPages(key, value)
	}

	if err := a.keyring.Set(a.service, key, value); err != nil {
		return fmt.Errorf("failed to write item to keyring: %w", err)
	}

	return nil
}

// NewKeyringArea creates a new KeyringArea that keeps its items under the given service.
func NewKeyringArea(service string, opts ...KeyringAreaOption) *KeyringArea {
	a := &KeyringArea{
		service: service,
		keyring: defaultKeyring{},
	}

	for _, opt := range opts {
		opt.applyKeyringAreaOption(a)
	}

	return a
}

type configurableKeyring interface {
	withKeyring(k keyring.Keyring)
}

// KeyringAreaOption is an option to configure KeyringArea.
type KeyringAreaOption interface {
	applyKeyringAreaOption(a configurableKeyring)
}

type keyringAreaOptionFunc func(a configurableKeyring)

func (f keyringAreaOptionFunc) applyKeyringAreaOption(a configurableKeyring) {
	f(a)
}

// WithKeyring sets the keyring to use.
func WithKeyring(k keyring.Keyring) KeyringAreaOption {
	return keyringAreaOptionFunc(func(a configurableKeyring) {
		a.withKeyring(k)
	})
}

func formatPage(key string, page int) string {
	return fmt.Sprintf("%s-%04d", key, page)
}

var _ keyring.Keyring = (*defaultKeyring)(nil)

type defaultKeyring struct{}

func (defaultKeyring) Set(service, user, password string) error {
	return keyring.Set(service, user, password) //nolint: wrapcheck
}

func (defaultKeyring) Get(service, user string) (string, error) {
	return keyring.Get(service, user) //nolint: wrapcheck
}

func (defaultKeyring) Delete(service, user string) error {
	return keyring.Delete(service, user) //nolint: wrapcheck
}

func (defaultKeyring) DeleteAll(service string) error {
	return keyring.DeleteAll(service) //nolint: wrapcheck
}
