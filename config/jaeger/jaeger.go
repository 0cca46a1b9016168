package jaeger

import (
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init 初始化全局tracer, gorm的opentracing插件会从GlobalTracer取span
func Init(serviceName, agentHostPort string) io.Closer {
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: agentHostPort,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		hlog.Errorf("init jaeger tracer failed, tracing disabled: %v", err)
		return nopCloser{}
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("jaeger tracer initialized for %s -> %s", serviceName, agentHostPort)
	return closer
}
