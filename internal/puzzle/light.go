package puzzle

// LightOnAtStart is the state of the room light before anyone touches it.
const LightOnAtStart = true

// NeedBatteryHint is shown when the dark lamp is pressed without a battery.
const NeedBatteryHint = "需要电池"

// LightHint is shown after the light is switched.
func LightHint(on bool) string {
	if on {
		return "开灯"
	}
	return "关灯"
}
