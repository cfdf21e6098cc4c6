package mailer

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"acl-research/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type fakeSmtp struct {
	Config
	webUrl string
}

func setupSmtp(t *testing.T) (fakeSmtp, func()) {
	cleanupTelemetry := telemetry.SetupForTesting(t, "test:mailer")

	// suppress logging
	testcontainers.Logger = log.New(io.Discard, "", 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "haravich/fake-smtp-server",
			ExposedPorts: []string{"1025/tcp", "1080/tcp"},
			WaitingFor:   wait.ForLog("smtp://0.0.0.0:1025"),
		},
	})
	if err != nil {
		cleanupTelemetry()
		t.Skipf("fake smtp container unavailable: %v", err)
	}

	host, err := container.Host(ctx)
	require.NoError(t, err)
	smtpPort, err := container.MappedPort(ctx, "1025/tcp")
	require.NoError(t, err)
	webPort, err := container.MappedPort(ctx, "1080/tcp")
	require.NoError(t, err)

	server := fakeSmtp{
		Config: Config{
			Server:       host,
			Port:         smtpPort.Int(),
			EmailAddress: "study@example.com",
			Password:     "default",
			FromName:     "ACL Study",
		},
		webUrl: fmt.Sprintf("http://%s:%d", host, webPort.Int()),
	}
	return server, func() {
		err := container.Terminate(context.Background())
		if err != nil {
			t.Log(err)
		}
		cleanupTelemetry()
	}
}

func TestSend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	server, cleanup := setupSmtp(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	err := Send(ctx, server.Config, Message{
		To:      []string{"researcher@example.com"},
		Subject: "Comparison report",
		Text:    "shots on target p=0.012",
	})
	require.NoError(t, err)

	res, err := resty.New().R().
		SetContext(ctx).
		Get(server.webUrl + "/messages/1.plain")
	require.NoError(t, err)
	require.Contains(t, res.String(), "shots on target p=0.012")
}

func TestSendValidation(t *testing.T) {
	ctx := context.Background()

	err := Send(ctx, Config{}, Message{To: []string{"a@example.com"}})
	require.ErrorContains(t, err, "not configured")

	err = Send(ctx, Config{Server: "localhost", Port: 25, EmailAddress: "a@example.com"}, Message{})
	require.ErrorContains(t, err, "no recipients")
}
