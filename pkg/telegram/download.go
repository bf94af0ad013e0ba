package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mephi-learn/telegram-bot-client/pkg/domain"
)

// FileURL возвращает ссылку на скачивание файла, полученного через GetFile.
// Ссылка действует ограниченное время.
func (c *Client) FileURL(file domain.File) (string, error) {
	if file.FilePath == "" {
		return "", fmt.Errorf("%w: file %q has no file_path, call GetFile first", ErrInvalidArgument, file.FileID)
	}
	return c.apiEndpoint + "/file/bot" + c.token + "/" + file.FilePath, nil
}

// DownloadFile скачивает содержимое файла в w и возвращает число записанных байт.
func (c *Client) DownloadFile(ctx context.Context, file domain.File, w io.Writer) (int64, error) {
	fileURL, err := c.FileURL(file)
	if err != nil {
		return 0, err
	}

	c.log.DebugContext(ctx, "telegram file download", "file_id", file.FileID, "file_path", file.FilePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return 0, newTransportError("downloadFile", "could not build request", redactToken(err, c.token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, c.failed(ctx, "downloadFile", newTransportError("downloadFile", "could not get a response", redactToken(err, c.token)))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, c.failed(ctx, "downloadFile", newTransportError("downloadFile", fmt.Sprintf("unexpected status %d", resp.StatusCode), nil).withResponse(resp.StatusCode, body))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, newTransportError("downloadFile", "could not read file content", err)
	}
	return n, nil
}
