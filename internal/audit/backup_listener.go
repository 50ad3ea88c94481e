package audit

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/healthtrack/internal/telemetry/metrics"
	"github.com/2beens/healthtrack/pkg"

	log "github.com/sirupsen/logrus"
)

const BackupSocketFileName = "healthtrack-audit-backup.sock"

// BackupReportListenerSetup listens on a unix socket for reports of the audit backup command
// and turns them into metrics. Reports look like "entries::<count>||duration::<seconds>".
func BackupReportListenerSetup(
	ctx context.Context,
	socketAddrDir, socketFileName string,
	metricsManager *metrics.Manager,
) (net.Addr, error) {
	socket := filepath.Join(socketAddrDir, socketFileName)
	// leftover from a previous run
	_ = os.Remove(socket)

	listener, err := net.Listen("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("binding to unix socket %s: %w", socket, err)
	}

	if err := os.Chmod(socket, os.ModeSocket|0666); err != nil {
		_ = listener.Close()
		return nil, err
	}

	go func() {
		<-ctx.Done()
		log.Debugln("audit backup unix socket listener context done, closing listener")
		_ = listener.Close()
	}()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
				default:
					log.Errorf("audit backup unix socket listener conn accept: %s", err)
				}
				return
			}

			if err := conn.SetDeadline(time.Now().Add(time.Minute)); err != nil {
				log.Errorf("audit backup conn, set timeout: %s", err)
				_ = conn.Close()
				continue
			}

			go handleBackupReport(conn, metricsManager)
		}
	}()

	return listener.Addr(), nil
}

func handleBackupReport(conn net.Conn, metricsManager *metrics.Manager) {
	defer func() { _ = conn.Close() }()

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return
	}

	report := pkg.BytesToString(buf[:n])
	log.Infof("audit backup unix socket received: %s", report)

	entries, duration, err := ParseBackupReport(report)
	if err != nil {
		log.Errorf("audit backup conn, invalid report: %s", err)
		_, _ = conn.Write([]byte("err"))
		return
	}

	metricsManager.CounterAuditBackups.Add(float64(entries))
	metricsManager.HistAuditBackupDuration.Observe(duration.Seconds())

	if _, err := conn.Write([]byte("ok")); err != nil {
		log.Errorf("audit backup conn, send response: %s", err)
	}
}

func FormatBackupReport(entries int, duration time.Duration) string {
	return fmt.Sprintf("entries::%d||duration::%f", entries, duration.Seconds())
}

func ParseBackupReport(report string) (int, time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(report), "||")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed report: %s", report)
	}

	entriesStr, ok := strings.CutPrefix(parts[0], "entries::")
	if !ok {
		return 0, 0, fmt.Errorf("missing entries: %s", report)
	}
	entries, err := strconv.Atoi(entriesStr)
	if err != nil || entries < 0 {
		return 0, 0, fmt.Errorf("invalid entries count: %s", entriesStr)
	}

	durationStr, ok := strings.CutPrefix(parts[1], "duration::")
	if !ok {
		return 0, 0, fmt.Errorf("missing duration: %s", report)
	}
	seconds, err := strconv.ParseFloat(durationStr, 64)
	if err != nil || seconds < 0 {
		return 0, 0, fmt.Errorf("invalid duration: %s", durationStr)
	}

	return entries, time.Duration(seconds * float64(time.Second)), nil
}

// SendBackupReport is used by the backup command to report a finished run to the service.
func SendBackupReport(socketAddrDir, socketFileName string, entries int, duration time.Duration) error {
	socket := filepath.Join(socketAddrDir, socketFileName)
	conn, err := net.DialTimeout("unix", socket, 5*time.Second)
	if err != nil {
		return fmt.Errorf("dial %s: %w", socket, err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetDeadline(time.Now().Add(10 * time.Second)); err != nil {
		return err
	}

	if _, err := conn.Write([]byte(FormatBackupReport(entries, duration))); err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	resp := make([]byte, 8)
	n, err := conn.Read(resp)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if string(resp[:n]) != "ok" {
		return fmt.Errorf("report rejected: %s", resp[:n])
	}
	return nil
}
