package render

import "github.com/taigrr/dualraster/internal/log"

var logger = log.New("render")
