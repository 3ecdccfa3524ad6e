package gamemath

import "math"

// BaseWalkSpeed is the movement speed at which no bonus jump distance applies.
const BaseWalkSpeed = 5.0

// ChargePercent returns timer/ceiling clamped to [0, 1].
func ChargePercent(timer, ceiling float64) float64 {
	if ceiling <= 0 {
		return 1
	}
	return ClampFloat(timer/ceiling, 0, 1)
}

// MaxJumpDistance returns the uncharged jump distance in tiles. A stationary
// actor always gets 1.
func MaxJumpDistance(moving bool, speed, normalDistance, scale float64) int {
	if !moving {
		return 1
	}
	bonus := 0.0
	if extra := speed - BaseWalkSpeed; extra > 0 {
		bonus = extra * scale
	}
	return int(math.Round(normalDistance + bonus))
}

// ChargedJumpDistance scales the max distance by charge.
func ChargedJumpDistance(maxDistance int, charge float64) int {
	return int(math.Ceil(1 + float64(maxDistance-1)*charge*1.5))
}

// JumpHeight returns the peak height of a jump. A negative charge means an
// instant jump, which uses the base height unscaled by charge.
func JumpHeight(base, charge, speedBonus float64) float64 {
	if charge < 0 {
		return base * speedBonus
	}
	return base * (0.5 + 1.2*ClampFloat(charge, 0, 1)) * speedBonus
}

// ScaleDamage multiplies a damage roll range, truncating like an integer cast.
func ScaleDamage(minDamage, maxDamage int, multiplier float64) (int, int) {
	return int(float64(minDamage) * multiplier), int(float64(maxDamage) * multiplier)
}
