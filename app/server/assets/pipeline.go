package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"io"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"
	"start-page/app/server/constants"
	"start-page/app/server/models"
	"time"
)

type Pipeline struct {
	l         *zap.Logger
	repo      Repository
	client    *http.Client
	urlPrefix string
	now       func() time.Time
}

func NewPipeline(l *zap.Logger, repo Repository, client *http.Client) *Pipeline {
	if client == nil {
		client = &http.Client{}
	}
	return &Pipeline{
		l:         l,
		repo:      repo,
		client:    client,
		urlPrefix: constants.AssetURLPrefix,
		now:       time.Now,
	}
}

// Upload 保存本地上传的文件，originalName 只用来取扩展名
func (p *Pipeline) Upload(ctx context.Context, t models.AssetType, originalName string, r io.Reader) (*models.Asset, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}

	data, err := readLimited(r)
	if err != nil {
		return nil, err
	}

	ext, ok := supportedExtension(originalName)
	if !ok {
		if filepath.Ext(originalName) != "" {
			return nil, ErrUnsupportedFile
		}
		// 没有扩展名时按内容猜测
		ext = ExtensionFor(http.DetectContentType(data))
	}

	return p.store(ctx, t, ext, data)
}

// IngestURL 下载远程图片并按同样的命名规则保存
func (p *Pipeline) IngestURL(ctx context.Context, t models.AssetType, rawURL string) (*models.Asset, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}

	target, err := parseRemoteURL(rawURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RemoteFetchTimeout)
	defer cancel()

	res, err := p.get(ctx, target, "image/*,*/*;q=0.8")
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := readLimited(res.Body)
	if err != nil {
		if errors.Is(err, ErrTooLarge) || errors.Is(err, ErrEmptyFile) {
			return nil, err
		}
		return nil, fetchError(err)
	}

	return p.store(ctx, t, ExtensionFor(res.Header.Get("Content-Type")), data)
}

func (p *Pipeline) store(ctx context.Context, t models.AssetType, ext string, data []byte) (*models.Asset, error) {
	now := p.now()
	filename := NewFilename(t, ext, now)

	if err := p.repo.Put(ctx, filename, data, ContentTypeFor(filename)); err != nil {
		p.l.Error("failed to store asset", zap.String("filename", filename), zap.Error(err))
		return nil, fmt.Errorf("store asset: %w", err)
	}

	asset := toAsset(Object{Key: filename, Size: int64(len(data)), ModTime: now}, p.urlPrefix)
	return &asset, nil
}

// List 按创建时间从新到旧
func (p *Pipeline) List(ctx context.Context) ([]models.Asset, error) {
	objects, err := p.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	list := make([]models.Asset, 0, len(objects))
	for _, obj := range objects {
		list = append(list, toAsset(obj, p.urlPrefix))
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt == list[j].CreatedAt {
			return list[i].Filename > list[j].Filename
		}
		return list[i].CreatedAt > list[j].CreatedAt
	})

	return list, nil
}

// Delete 不会清理文档中对该资源的引用
func (p *Pipeline) Delete(ctx context.Context, filename string) error {
	return p.repo.Delete(ctx, filename)
}

// Open 读取资源内容，返回依据扩展名得到的内容类型
func (p *Pipeline) Open(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	body, _, err := p.repo.Get(ctx, filename)
	if err != nil {
		return nil, "", err
	}
	return body, ContentTypeFor(filename), nil
}

func (p *Pipeline) get(ctx context.Context, target *url.URL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", constants.BrowserUserAgent)
	req.Header.Set("Accept", accept)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fetchError(err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, res.StatusCode)
	}

	return res, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, constants.AssetMaxUploadSize+1)); err != nil {
		return nil, err
	}
	if buf.Len() > constants.AssetMaxUploadSize {
		return nil, ErrTooLarge
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyFile
	}
	return buf.Bytes(), nil
}

func parseRemoteURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	return u, nil
}

func fetchError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrFetch, err)
}
