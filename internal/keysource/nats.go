package keysource

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/nats-io/nats.go"

	"github.com/verte-zerg/keydrill/internal/practice"
)

// Message is the JSON form of a relayed key press.
type Message struct {
	Time    time.Time
	ModMask tcell.ModMask
	Key     tcell.Key
	Char    rune
}

// DecodeMessage parses a relayed key press.
func DecodeMessage(data []byte) (practice.KeyEvent, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return practice.KeyEvent{}, fmt.Errorf("failed to decode key message: %w", err)
	}
	return FromTcell(tcell.NewEventKey(msg.Key, msg.Char, msg.ModMask)), nil
}

// Relay subscribes to key presses published on a NATS subject.
type Relay struct {
	conn *nats.Conn
	sub  *nats.Subscription
	done chan struct{}
}

// Subscribe connects to url and forwards key presses on subject to keys.
// A message that fails to decode is sent to errs, which ends the session.
func Subscribe(url, subject string, keys chan<- practice.KeyEvent, errs chan<- error) (*Relay, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	r := &Relay{conn: conn, done: make(chan struct{})}
	r.sub, err = conn.Subscribe(subject, func(msg *nats.Msg) {
		ev, err := DecodeMessage(msg.Data)
		if err != nil {
			select {
			case errs <- err:
			default:
			}
			return
		}
		select {
		case keys <- ev:
		case <-r.done:
		}
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to subscribe to %q: %w", subject, err)
	}
	return r, nil
}

// Close stops forwarding and drains the connection.
func (r *Relay) Close() error {
	close(r.done)
	if err := r.sub.Unsubscribe(); err != nil {
		r.conn.Close()
		return err
	}
	return r.conn.Drain()
}

// Publish sends a key press on subject.
func Publish(conn *nats.Conn, subject string, ev *tcell.EventKey) error {
	data, err := EncodeMessage(ev)
	if err != nil {
		return err
	}
	if err := conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish key: %w", err)
	}
	return nil
}

// EncodeMessage is the inverse of DecodeMessage.
func EncodeMessage(ev *tcell.EventKey) ([]byte, error) {
	data, err := json.Marshal(Message{
		Time:    ev.When(),
		ModMask: ev.Modifiers(),
		Key:     ev.Key(),
		Char:    ev.Rune(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode key message: %w", err)
	}
	return data, nil
}
