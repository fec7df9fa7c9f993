package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Bidex-03/ummah-connect/pkg/errors"
	"github.com/Bidex-03/ummah-connect/pkg/status"
)

// MailerRepository delivers transactional mail through the mail provider's
// HTTP API. Delivery is best effort; callers decide whether a failure
// matters.
type MailerRepository interface {
	Send(ctx context.Context, mail Mail) error
}

type mailerRepository struct {
	baseURL string
	apiKey  string
	logger  *logrus.Logger
	hc      *http.Client
}

func NewMailerRepository(baseURL string, apiKey string, logger *logrus.Logger, hc *http.Client) MailerRepository {
	return &mailerRepository{
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
		hc:      hc,
	}
}

// Send implements MailerRepository.
func (r *mailerRepository) Send(ctx context.Context, mail Mail) error {
	reqBuff, _ := json.Marshal(mail)
	body := bytes.NewBuffer(reqBuff)
	url := fmt.Sprintf("%s/v1/messages", r.baseURL)

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while sending email")
	}

	hr.Header.Add("Content-Type", "application/json")
	hr.Header.Add("Accept", "application/json")
	hr.Header.Add("Authorization", fmt.Sprintf("Bearer %s", r.apiKey))

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while sending email")
	}

	defer hresp.Body.Close()

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		respBody, _ := io.ReadAll(hresp.Body)
		err := fmt.Errorf("mail provider responded with %d: %s", hresp.StatusCode, string(respBody))
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while sending email")
	}

	return nil
}
