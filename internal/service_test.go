/*
 * Copyright (c) 2023. Anton Starikov -- All Rights Reserved
 *
 * This file is part of AELLPH project.
 *
 * AELLPH is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as the Free Software Foundation,
 * either version 3 of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package internal

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/antst/aellph/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap/zapcore"
)

type doneToken struct{}

func (doneToken) Wait() bool                     { return true }
func (doneToken) WaitTimeout(time.Duration) bool { return true }
func (doneToken) Error() error                   { return nil }
func (doneToken) Done() <-chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

type published struct {
	topic   string
	payload []byte
}

type fakeClient struct {
	mu        sync.Mutex
	published []published
	subscribe map[string]mqtt.MessageHandler
	closed    bool
}

func (f *fakeClient) SafePublish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, published{topic, payload.([]byte)})
	return doneToken{}
}

func (f *fakeClient) SafeSubscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subscribe == nil {
		f.subscribe = make(map[string]mqtt.MessageHandler)
	}
	f.subscribe[topic] = callback
	return doneToken{}
}

func (f *fakeClient) SafeUnsubscribe(topics ...string) mqtt.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range topics {
		delete(f.subscribe, t)
	}
	return doneToken{}
}

func (f *fakeClient) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return controlQoS }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func newTestService(t *testing.T, withDB bool) (*Service, *fakeClient) {
	t.Helper()
	cfg := newTestConfig(t, withDB)
	client := &fakeClient{}
	return newService(cfg, newTestCalculator(t, cfg), client), client
}

func sendRequest(t *testing.T, s *Service, client *fakeClient, payload string) Response {
	t.Helper()
	s.requestHandler(nil, fakeMessage{topic: s.topic(requestTopic), payload: []byte(payload)})

	client.mu.Lock()
	defer client.mu.Unlock()
	if len(client.published) == 0 {
		t.Fatal("no response published")
	}
	last := client.published[len(client.published)-1]
	if last.topic != "aellph/control/result" {
		t.Errorf("published on %q", last.topic)
	}
	var resp Response
	if err := json.Unmarshal(last.payload, &resp); err != nil {
		t.Fatalf("response %s: %v", last.payload, err)
	}
	return resp
}

func TestServiceAnswersRequests(t *testing.T) {
	s, client := newTestService(t, false)

	resp := sendRequest(t, s, client, `{"id":"r1","teff":6000,"logg":4.3,"fill":0.5,"incl":85,"mass_ratio":0.8,"band":"V"}`)
	if resp.ID != "r1" || resp.Error != "" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Parameters == nil || *resp.Parameters != validParameters() {
		t.Errorf("parameters = %+v", resp.Parameters)
	}
	want, err := AellPH(s.cfg.Tables.Dir, validParameters())
	if err != nil {
		t.Fatalf("AellPH: %v", err)
	}
	if resp.Harmonics != want {
		t.Errorf("harmonics = %+v, want %+v", resp.Harmonics, want)
	}
}

func TestServiceRejectsBadRequests(t *testing.T) {
	s, client := newTestService(t, false)

	tests := []struct {
		name    string
		payload string
	}{
		{"not an object", `[1, 2`},
		{"missing band", `{"teff":6000,"logg":4.3,"fill":0.5,"incl":85,"mass_ratio":0.8}`},
		{"invalid fill", `{"teff":6000,"logg":4.3,"fill":1.5,"incl":85,"mass_ratio":0.8,"band":"V"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := sendRequest(t, s, client, tt.payload)
			if resp.Error == "" {
				t.Errorf("response = %+v, want an error", resp)
			}
			if resp.ID == "" {
				t.Error("response without id")
			}
			if resp.A1c.IsDefined() || resp.A2c.IsDefined() || resp.A3c.IsDefined() {
				t.Errorf("failed response carries coefficients: %+v", resp.Harmonics)
			}
		})
	}
}

func TestServiceLogLevel(t *testing.T) {
	s, _ := newTestService(t, true)
	defer logger.SetLogLevel(logger.Level())
	ctx := context.Background()

	s.controlUpdateHandler(nil, fakeMessage{topic: s.topic(logLevelTopic), payload: []byte("debug")})
	if logger.Level() != zapcore.DebugLevel {
		t.Errorf("level = %v, want debug", logger.Level())
	}
	if v, err := s.calc.DB().ControlValue(ctx, logLevelTopic, ""); err != nil || v != "debug" {
		t.Errorf("stored level = %q, %v", v, err)
	}

	s.controlUpdateHandler(nil, fakeMessage{topic: s.topic(logLevelTopic), payload: []byte("loud")})
	if logger.Level() != zapcore.DebugLevel {
		t.Errorf("bad level changed it to %v", logger.Level())
	}
}

func TestServiceRunStopsWithContext(t *testing.T) {
	s, client := newTestService(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.Now().Add(time.Second)
	for {
		client.mu.Lock()
		n := len(client.subscribe)
		client.mu.Unlock()
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("service did not subscribe")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	if !client.closed || len(client.subscribe) != 0 {
		t.Errorf("client closed = %v, subscriptions = %d", client.closed, len(client.subscribe))
	}
}
