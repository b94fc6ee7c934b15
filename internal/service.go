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
	"net/http"
	"strings"
	"time"

	"github.com/antst/aellph/internal/config"
	"github.com/antst/aellph/internal/logger"
	"github.com/antst/aellph/internal/safe_mqtt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	requestTopic  = "request"
	resultTopic   = "result"
	logLevelTopic = "log_level"

	controlQoS      = 1
	shutdownTimeout = 5 * time.Second
)

// Service answers computation requests received over MQTT.
type Service struct {
	cfg  *config.Config
	calc *Calculator
	mqtt safe_mqtt.MqttClient
}

func NewService(ctx context.Context, cfg *config.Config, calc *Calculator) (*Service, error) {
	client, err := safe_mqtt.InitMQTTClient(ctx, cfg.MQTTConfig.URL, "aellph-"+uuid.New().String())
	if err != nil {
		return nil, err
	}
	return newService(cfg, calc, client), nil
}

func newService(cfg *config.Config, calc *Calculator, client safe_mqtt.MqttClient) *Service {
	return &Service{
		cfg:  cfg,
		calc: calc,
		mqtt: client,
	}
}

func (s *Service) topic(name string) string {
	return s.cfg.MQTTConfig.ControlTopic + "/" + name
}

func (s *Service) setupMQTTSubscriptions() {
	s.mqtt.SafeSubscribe(s.topic(requestTopic), controlQoS, s.requestHandler)
	s.mqtt.SafeSubscribe(s.topic(logLevelTopic), controlQoS, s.controlUpdateHandler)
}

// Run serves requests, and metrics when metrics_addr is set, until ctx is
// done.
func (s *Service) Run(ctx context.Context) error {
	s.restoreLogLevel(ctx)
	s.setupMQTTSubscriptions()
	logger.L().Infof("Serving requests on `%s`", s.topic(requestTopic))

	g, ctx := errgroup.WithContext(ctx)
	if s.cfg.MetricsAddr != "" {
		g.Go(func() error {
			return serveMetrics(ctx, s.cfg.MetricsAddr)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})
	err := g.Wait()

	s.mqtt.SafeUnsubscribe(s.topic(requestTopic), s.topic(logLevelTopic)).Wait()
	s.mqtt.Close()
	logger.L().Info("Service stopped")
	return err
}

func (s *Service) requestHandler(client mqtt.Client, message mqtt.Message) {
	logger.L().Debugf("Got MQTT request: %v", string(message.Payload()))
	resp := s.handleRequest(context.Background(), message.Payload())

	data, err := json.Marshal(resp)
	if err != nil {
		logger.L().Error(err)
		return
	}
	s.mqtt.SafePublish(s.topic(resultTopic), controlQoS, false, data)
}

func (s *Service) handleRequest(ctx context.Context, payload []byte) Response {
	req, p, err := parseRequest(payload)
	resp := Response{ID: req.ID}
	if err != nil {
		logger.L().Warnf("Rejected request %s: %v", req.ID, err)
		resp.Error = err.Error()
		return resp
	}
	resp.Parameters = &p

	h, err := s.calc.AellPH(ctx, p)
	if err != nil {
		logger.L().Errorf("Request %s failed: %v", req.ID, err)
		resp.Error = err.Error()
		return resp
	}
	resp.Harmonics = h
	logger.L().Infof("Request %s: %+v -> a1c=%v a2c=%v a3c=%v", req.ID, p, h.A1c, h.A2c, h.A3c)
	return resp
}

func (s *Service) controlUpdateHandler(client mqtt.Client, message mqtt.Message) {
	topic := message.Topic()[strings.LastIndex(message.Topic(), "/")+1:]
	logger.L().Infof("Got MQTT control request: %v : %v", topic, string(message.Payload()))
	switch topic {
	case logLevelTopic:
		s.setLogLevel(context.Background(), string(message.Payload()))
	}
}

func (s *Service) setLogLevel(ctx context.Context, val string) {
	if err := s.cfg.LogLevel.Set(val); err != nil {
		logger.L().Errorf("Wrong log level `%v`", val)
		return
	}
	logger.SetLogLevel(s.cfg.LogLevel)
	logger.L().Infof("Updated loglevel to `%v`", s.cfg.LogLevel.String())

	if d := s.calc.DB(); d != nil {
		if err := d.SetControlValue(ctx, logLevelTopic, s.cfg.LogLevel.String()); err != nil {
			logger.L().Error(err)
		}
	}
}

func (s *Service) restoreLogLevel(ctx context.Context) {
	d := s.calc.DB()
	if d == nil {
		return
	}
	val, err := d.ControlValue(ctx, logLevelTopic, s.cfg.LogLevel.String())
	if err != nil {
		logger.L().Error(err)
		return
	}
	if val != s.cfg.LogLevel.String() {
		s.setLogLevel(ctx, val)
	}
}

func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.L().Infof("Serving Prometheus metrics on `%s`", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
