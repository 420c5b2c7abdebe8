package hlslc

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gogpu/hlslc/hlsl"
)

// ---------------------------------------------------------------------------
// Test shader sources — realistic HLSL shaders at different complexity levels
// ---------------------------------------------------------------------------

// shaderSmallVertex is a minimal vertex shader.
const shaderSmallVertex = `
float4 vs_main(uint idx : SV_VertexID) : SV_Position
{
    float2 pos[3] = { float2(-0.5, -0.5), float2(0.5, -0.5), float2(0.0, 0.5) };
    return float4(pos[idx], 0.0, 1.0);
}
`

// shaderSmallFragment is a minimal fragment shader.
const shaderSmallFragment = `
float4 ps_main() : SV_Target
{
    return float4(1.0, 0.0, 0.0, 1.0);
}
`

// shaderMediumLit is a lit vertex+pixel pipeline with a cbuffer and
// struct interfaces.
const shaderMediumLit = `
cbuffer Camera : register(b0)
{
    row_major float4x4 viewProj;
    float3 eye;
    float time;
};

struct VSIn
{
    float3 pos : POSITION;
    float3 normal : NORMAL;
    float2 uv : TEXCOORD0;
};

struct VSOut
{
    float4 pos : SV_Position;
    float3 worldPos : TEXCOORD0;
    float3 normal : TEXCOORD1;
    float2 uv : TEXCOORD2;
};

Texture2D albedo : register(t0);
SamplerState linearSampler : register(s0);

VSOut vs_main(VSIn input)
{
    VSOut o;
    o.pos = mul(float4(input.pos, 1.0), viewProj);
    o.worldPos = input.pos;
    o.normal = input.normal;
    o.uv = input.uv;
    return o;
}

float4 ps_main(VSOut input) : SV_Target
{
    // diffuse + blinn-phong { braces in comments are skipped }
    float3 N = normalize(input.normal);
    float3 L = normalize(float3(10.0, 10.0, 10.0) - input.worldPos);
    float3 V = normalize(eye - input.worldPos);
    float3 H = normalize(L + V);
    float diffuse = max(dot(N, L), 0.0);
    float specular = pow(max(dot(N, H), 0.0), 32.0);
    float4 base = albedo.Sample(linearSampler, input.uv);
    return float4(base.rgb * diffuse + specular * 0.5, base.a);
}
`

// shaderLargeShadow adds shadow mapping, multiple cbuffers and helper
// prototypes.
const shaderLargeShadow = shaderMediumLit + `
cbuffer Lights : register(b1, space1)
{
    float4 lightPos[4];
    float4 lightColor[4];
    column_major float4x4 lightViewProj[4];
    uint lightCount;
};

Texture2D shadowMap : register(t1);
TextureCube environment : register(t2);
SamplerComparisonState shadowSampler : register(s1);

float shadowFactor(float4 lightSpacePos);

float3 shade(in float3 N, in float3 P, out float visibility)
{
    float3 result = 0;
    visibility = 1.0;
    for (uint i = 0; i < lightCount; ++i)
    {
        float3 L = normalize(lightPos[i].xyz - P);
        float s = shadowFactor(mul(float4(P, 1.0), lightViewProj[i]));
        visibility = min(visibility, s);
        result += lightColor[i].rgb * max(dot(N, L), 0.0) * s;
    }
    return result;
}

float shadowFactor(float4 lightSpacePos)
{
    float3 uvz = lightSpacePos.xyz / lightSpacePos.w;
    if (uvz.z > 1.0) { return 1.0; }
    return shadowMap.SampleCmpLevelZero(shadowSampler, uvz.xy * 0.5 + 0.5, uvz.z);
}
`

// ---------------------------------------------------------------------------
// Complexity-grouped shaders for table-driven benchmarks
// ---------------------------------------------------------------------------

type shaderCase struct {
	name   string
	source string
}

var shadersByComplexity = []shaderCase{
	{"small_vertex", shaderSmallVertex},
	{"small_fragment", shaderSmallFragment},
	{"medium_lit", shaderMediumLit},
	{"large_shadow", shaderLargeShadow},
}

// BenchmarkParse benchmarks the full lexer + parser pipeline grouped by
// shader complexity. Reports allocations and throughput in bytes/sec.
func BenchmarkParse(b *testing.B) {
	for _, sc := range shadersByComplexity {
		b.Run(sc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(sc.source)))
			b.ResetTimer()

			var result *hlsl.Shader
			for i := 0; i < b.N; i++ {
				var err error
				result, err = Parse(sc.source)
				if err != nil {
					b.Fatalf("parse failed: %v", err)
				}
			}
			runtime.KeepAlive(result)
		})
	}
}

// BenchmarkTokenize benchmarks the lexer alone.
func BenchmarkTokenize(b *testing.B) {
	for _, sc := range shadersByComplexity {
		b.Run(sc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(sc.source)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				lexems, err := Tokenize(sc.source)
				if err != nil {
					b.Fatalf("tokenize failed: %v", err)
				}
				runtime.KeepAlive(lexems)
			}
		})
	}
}

// BenchmarkDump benchmarks printing a parsed scope tree.
func BenchmarkDump(b *testing.B) {
	shader, err := Parse(shaderLargeShadow)
	if err != nil {
		b.Fatalf("parse failed: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	var sb strings.Builder
	for i := 0; i < b.N; i++ {
		sb.Reset()
		if err := hlsl.Dump(&sb, shader.Global); err != nil {
			b.Fatalf("dump failed: %v", err)
		}
	}
}

// BenchmarkParseFiles benchmarks concurrent batch parsing.
func BenchmarkParseFiles(b *testing.B) {
	dir := b.TempDir()
	var paths []string
	for i := 0; i < 16; i++ {
		sc := shadersByComplexity[i%len(shadersByComplexity)]
		path := filepath.Join(dir, sc.name+"_"+string(rune('a'+i))+".hlsl")
		if err := os.WriteFile(path, []byte(sc.source), 0o600); err != nil {
			b.Fatal(err)
		}
		paths = append(paths, path)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		results, err := ParseFiles(context.Background(), paths, DefaultOptions())
		if err != nil {
			b.Fatalf("ParseFiles failed: %v", err)
		}
		for _, r := range results {
			if r.Err != nil {
				b.Fatalf("%s: %v", r.Path, r.Err)
			}
		}
	}
}
