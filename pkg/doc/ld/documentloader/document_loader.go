/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package documentloader provides a JSON-LD document loader serving embedded contexts.
package documentloader

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/bluele/gcache"
	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/piprate/json-gold/ld"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	ldcontext "github.com/hyperledger/aries-vcproof/pkg/doc/ld/context"
	"github.com/hyperledger/aries-vcproof/pkg/doc/ld/context/embed"
)

const defaultRemoteCacheSize = 100

var logger = log.New("aries-vcproof/documentloader")

// ErrContextNotFound is returned when JSON-LD context document is not embedded and remote fetching is disabled.
var ErrContextNotFound = errors.New("context document not found")

// DocumentLoader is an implementation of ld.DocumentLoader serving embedded contexts.
// Context documents not known in advance are fetched with an optional remote loader and cached.
type DocumentLoader struct {
	contexts             map[string]*ld.RemoteDocument
	remoteDocumentLoader ld.DocumentLoader
	remoteCache          gcache.Cache
}

// NewDocumentLoader returns a new DocumentLoader instance.
//
// Embedded contexts are always preloaded. Additional contexts can be set using WithExtraContexts() option.
//
// By default, missing contexts are not fetched from the remote URL. Use WithRemoteDocumentLoader() option
// to specify a custom loader that can resolve context documents from the network.
func NewDocumentLoader(opts ...Opts) (*DocumentLoader, error) {
	options := &documentLoaderOpts{remoteCacheSize: defaultRemoteCacheSize}

	for i := range opts {
		opts[i](options)
	}

	contexts := make([]ldcontext.Document, 0, len(embed.Contexts)+len(options.extraContexts))
	contexts = append(contexts, embed.Contexts...)
	contexts = append(contexts, options.extraContexts...)

	parsed := make(map[string]*ld.RemoteDocument, len(contexts))

	for _, doc := range contexts {
		content, err := ld.DocumentFromReader(bytes.NewReader(doc.Content))
		if err != nil {
			return nil, fmt.Errorf("document from reader %s: %w", doc.URL, err)
		}

		parsed[doc.URL] = &ld.RemoteDocument{
			DocumentURL: doc.DocumentURL,
			Document:    content,
		}
	}

	return &DocumentLoader{
		contexts:             parsed,
		remoteDocumentLoader: options.remoteDocumentLoader,
		remoteCache:          gcache.New(options.remoteCacheSize).LRU().Build(),
	}, nil
}

// LoadDocument resolves JSON-LD context document by document URL (u) either from the preloaded set or from
// remote URL. If document is not preloaded and remote DocumentLoader is not specified, ErrContextNotFound
// is returned.
func (l *DocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	if rd, ok := l.contexts[u]; ok {
		return rd, nil
	}

	if l.remoteDocumentLoader == nil { // fetching from the remote URL is disabled
		return nil, fmt.Errorf("%s: %w", u, ErrContextNotFound)
	}

	if cached, err := l.remoteCache.Get(u); err == nil {
		if rd, ok := cached.(*ld.RemoteDocument); ok {
			return rd, nil
		}
	}

	logger.Debugf("fetching remote context %s", u)

	rd, err := l.remoteDocumentLoader.LoadDocument(u)
	if err != nil {
		return nil, fmt.Errorf("load remote context document: %w", err)
	}

	if err := l.remoteCache.Set(u, rd); err != nil {
		logger.Warnf("cache remote context %s: %v", u, err)
	}

	return rd, nil
}

// NewRemoteLoader returns a loader fetching context documents over HTTP with an instrumented transport.
func NewRemoteLoader(client *http.Client) ld.DocumentLoader {
	if client == nil {
		client = &http.Client{}
	}

	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	instrumented := *client
	instrumented.Transport = otelhttp.NewTransport(transport)

	return ld.NewDefaultDocumentLoader(&instrumented)
}

type documentLoaderOpts struct {
	remoteDocumentLoader ld.DocumentLoader
	extraContexts        []ldcontext.Document
	remoteCacheSize      int
}

// Opts configures DocumentLoader during creation.
type Opts func(opts *documentLoaderOpts)

// WithExtraContexts sets the extra contexts (in addition to embedded) for preloading.
func WithExtraContexts(contexts ...ldcontext.Document) Opts {
	return func(opts *documentLoaderOpts) {
		opts.extraContexts = append(opts.extraContexts, contexts...)
	}
}

// WithRemoteDocumentLoader specifies loader for fetching JSON-LD context documents from remote URLs.
// Documents are fetched with this loader only if they are not preloaded.
func WithRemoteDocumentLoader(loader ld.DocumentLoader) Opts {
	return func(opts *documentLoaderOpts) {
		opts.remoteDocumentLoader = loader
	}
}

// WithRemoteCacheSize sets the number of remote context documents kept in memory.
func WithRemoteCacheSize(size int) Opts {
	return func(opts *documentLoaderOpts) {
		if size > 0 {
			opts.remoteCacheSize = size
		}
	}
}
