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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/antst/aellph/internal"
	"github.com/antst/aellph/internal/config"
	"github.com/antst/aellph/internal/logger"
)

// Build version, overridden with flag during build.
var version = "devel"

func main() {
	defer logger.Close()

	cfg := config.Get()
	logger.L().Debugf("Ellipsoidal harmonics calculator, version: %+v", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	calc, err := internal.NewCalculator(ctx, cfg)
	if err != nil {
		logger.L().Fatal(err)
	}
	defer calc.Close()

	if cfg.Serve {
		s, err := internal.NewService(ctx, cfg, calc)
		if err != nil {
			logger.L().Fatal(err)
		}
		if err := s.Run(ctx); err != nil {
			logger.L().Fatal(err)
		}
		return
	}

	p, err := internal.ParametersFromQuery(cfg.Query)
	if err != nil {
		logger.L().Fatal(err)
	}
	h, err := calc.AellPH(ctx, p)
	if err != nil {
		logger.L().Fatal(err)
	}
	if err := internal.WriteResult(os.Stdout, p, h, cfg.JSON); err != nil {
		logger.L().Fatal(err)
	}
}
